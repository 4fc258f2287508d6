package intent

import (
	"regexp"
	"strings"
)

// SessionView is the read-only slice of conversational state the engine
// consults. The dialogue layer owns the state and its transitions; the
// engine never mutates it. At most one marker is expected to be active at a
// time, but the guard tolerates several.
type SessionView struct {
	DoctorSpecialtyPagination bool
	DoctorPagination          bool
	ProductPagination         bool
	CartPagination            bool
}

func (v SessionView) paginationActive() bool {
	return v.DoctorSpecialtyPagination || v.DoctorPagination || v.ProductPagination || v.CartPagination
}

// navigationKeywords escape pagination suppression: they belong to the list
// flow itself and fall through to the cascade unclassified.
var navigationKeywords = []string{"next", "prev", "previous", "back", "cancel", "exit", "stop"}

var digitsOnlyRE = regexp.MustCompile(`^[0-9]+$`)

// guardPagination decides whether list navigation suppresses intent routing.
// While any marker is set, no ordinary intent may be emitted: digit replies
// become pagination selections for the dialogue layer to resolve, navigation
// words pass through, everything else is held as a pagination selection too.
// Returns the suppressing result and true when the cascade must not run.
func guardPagination(text string, view SessionView) (Result, bool) {
	if !view.paginationActive() {
		return Result{}, false
	}

	trimmed := strings.TrimSpace(text)
	if digitsOnlyRE.MatchString(trimmed) {
		return compose(IntentPaginationSelection, Selection{Value: trimmed}, "", SourceNumericContext), true
	}

	lower := strings.ToLower(trimmed)
	for _, nav := range navigationKeywords {
		if strings.Contains(lower, nav) {
			return Result{}, false
		}
	}

	return compose(IntentPaginationSelection, nil, "", SourcePaginationContext), true
}
