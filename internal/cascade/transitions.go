package cascade

import "github.com/1siamBot/worldsim-core/internal/event"

// This is an authored table with one row for each of the 10 categories
// (see DESIGN.md for the full rationale): self-transitions are 1.0 (no
// penalty for staying in-category), and each listed pair is a plausibility
// modifier for "a cause in category A triggers a consequence rule tagged
// category B". Rows list only some target categories; any pair not listed
// falls through to the hard-coded implausibility penalty.
var transitionModifiers = map[event.Category]map[event.Category]float64{
	event.CategoryPolitical: {
		event.CategoryPolitical: 1.0, event.CategoryMilitary: 0.7, event.CategoryEconomic: 0.5,
		event.CategoryCultural: 0.3, event.CategoryReligious: 0.3, event.CategoryPersonal: 0.4,
		event.CategoryDisaster: 0.15,
	},
	event.CategoryMilitary: {
		event.CategoryMilitary: 1.0, event.CategoryPolitical: 0.6, event.CategoryEconomic: 0.4,
		event.CategoryPersonal: 0.5, event.CategoryDisaster: 0.3, event.CategoryExploratory: 0.2,
	},
	event.CategoryMagical: {
		event.CategoryMagical: 1.0, event.CategoryReligious: 0.5, event.CategoryScientific: 0.3,
		event.CategoryDisaster: 0.35, event.CategoryCultural: 0.3, event.CategoryPersonal: 0.3,
	},
	event.CategoryCultural: {
		event.CategoryCultural: 1.0, event.CategoryReligious: 0.4, event.CategoryPolitical: 0.3,
		event.CategoryPersonal: 0.4, event.CategoryEconomic: 0.2,
	},
	event.CategoryReligious: {
		event.CategoryReligious: 1.0, event.CategoryCultural: 0.5, event.CategoryPolitical: 0.35,
		event.CategoryMagical: 0.4, event.CategoryMilitary: 0.2,
	},
	event.CategoryScientific: {
		event.CategoryScientific: 1.0, event.CategoryEconomic: 0.4, event.CategoryMagical: 0.2,
		event.CategoryExploratory: 0.35, event.CategoryCultural: 0.2,
	},
	event.CategoryPersonal: {
		event.CategoryPersonal: 1.0, event.CategoryPolitical: 0.3, event.CategoryCultural: 0.3,
		event.CategoryMilitary: 0.2, event.CategoryReligious: 0.2, event.CategoryEconomic: 0.2,
	},
	event.CategoryExploratory: {
		event.CategoryExploratory: 1.0, event.CategoryEconomic: 0.4, event.CategoryScientific: 0.3,
		event.CategoryMilitary: 0.25, event.CategoryDisaster: 0.25,
	},
	event.CategoryEconomic: {
		event.CategoryEconomic: 1.0, event.CategoryPolitical: 0.4, event.CategoryMilitary: 0.3,
		event.CategoryExploratory: 0.3, event.CategoryPersonal: 0.2,
	},
	event.CategoryDisaster: {
		event.CategoryDisaster: 1.0, event.CategoryEconomic: 0.5, event.CategoryPolitical: 0.4,
		event.CategoryReligious: 0.35, event.CategoryMilitary: 0.3, event.CategoryPersonal: 0.3,
		event.CategoryCultural: 0.2,
	},
}

// implausibleTransitionPenalty is the hard-coded multiplier applied when a
// rule's category differs from its cause's and the pair is not in the table
// above.
const implausibleTransitionPenalty = 0.1

// getTransitionModifier returns the plausibility modifier for a consequence
// of category `to` descending from a cause of category `from`, or
// (implausibleTransitionPenalty, false) if the pair is untabled.
func getTransitionModifier(from, to event.Category) (float64, bool) {
	row, ok := transitionModifiers[from]
	if !ok {
		return implausibleTransitionPenalty, false
	}
	modifier, ok := row[to]
	if !ok {
		return implausibleTransitionPenalty, false
	}
	return modifier, true
}
