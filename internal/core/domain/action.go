package domain

// Action identifies one sequence transformation selectable from the web form.
type Action int

const (
	// ActionNone returns the input unchanged. Unrecognised labels map here.
	ActionNone Action = iota
	ActionComplement
	ActionReverse
	ActionTranslate
	ActionRemoveNumbers
	ActionRemoveSpaces
	ActionRemoveLinebreaks
	ActionReverseComplement
	ActionGCContent
)

// Form labels, as submitted by the index page buttons.
const (
	LabelComplement        = "Complement Sequence"
	LabelReverse           = "Reverse Sequence"
	LabelTranslate         = "Translate Sequence"
	LabelRemoveNumbers     = "Remove Numbers"
	LabelRemoveSpaces      = "Remove Spaces"
	LabelRemoveLinebreaks  = "Remove linebreaks"
	LabelReverseComplement = "Reverse Complement"
	LabelGCContent         = "GC Content"
)

var actionLabels = map[Action]string{
	ActionComplement:        LabelComplement,
	ActionReverse:           LabelReverse,
	ActionTranslate:         LabelTranslate,
	ActionRemoveNumbers:     LabelRemoveNumbers,
	ActionRemoveSpaces:      LabelRemoveSpaces,
	ActionRemoveLinebreaks:  LabelRemoveLinebreaks,
	ActionReverseComplement: LabelReverseComplement,
	ActionGCContent:         LabelGCContent,
}

// ParseAction maps a form label to its Action. Matching is exact; anything
// else, including the empty string, yields ActionNone.
func ParseAction(label string) Action {
	for a, l := range actionLabels {
		if l == label {
			return a
		}
	}
	return ActionNone
}

// Actions lists every selectable action in form order.
func Actions() []Action {
	return []Action{
		ActionComplement,
		ActionReverse,
		ActionTranslate,
		ActionRemoveNumbers,
		ActionRemoveSpaces,
		ActionRemoveLinebreaks,
		ActionReverseComplement,
		ActionGCContent,
	}
}

// String returns the form label of the action.
func (a Action) String() string {
	if l, ok := actionLabels[a]; ok {
		return l
	}
	return "None"
}
