// Package realtime tracks a live Baduanjin exercise session: a per-frame
// phase state machine with heuristic form scoring and textual feedback.
package realtime

// ExerciseDefinition describes one of the eight Baduanjin brocades. The
// catalog is immutable; exercise ids are always supplied by the caller,
// never inferred from the movement.
type ExerciseDefinition struct {
	ID             int               `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Phases         []string          `json:"phases"`
	PhaseHints     map[string]string `json:"phaseHints"`
	CommonMistakes []string          `json:"commonMistakes"`
}

// Catalog holds the eight Baduanjin exercises, keyed by id 1-8.
var Catalog = map[int]*ExerciseDefinition{
	1: {
		ID:          1,
		Name:        "Two Hands Hold Up the Heavens",
		Description: "Interlace the fingers and press both palms upward above the head, lengthening the whole body.",
		Phases:      []string{"prepare", "raise", "hold", "lower"},
		PhaseHints: map[string]string{
			"prepare": "stand relaxed, hands crossed below the navel",
			"raise":   "lift both hands together along the center line",
			"hold":    "arms fully extended overhead, palms up",
			"lower":   "let the arms float back down to the sides",
		},
		CommonMistakes: []string{"uneven hand height", "leaning backward", "shrugged shoulders"},
	},
	2: {
		ID:          2,
		Name:        "Drawing the Bow to Shoot the Eagle",
		Description: "In a wide horse stance, extend one arm to the side as if holding a bow while the other hand draws back.",
		Phases:      []string{"prepare", "draw", "hold", "release"},
		PhaseHints: map[string]string{
			"prepare": "step out into horse stance",
			"draw":    "extend one arm, draw the other hand to the chest",
			"hold":    "both arms at shoulder height, gaze along the bow arm",
			"release": "return both hands to center",
		},
		CommonMistakes: []string{"narrow stance", "collapsed bow arm", "raised shoulders"},
	},
	3: {
		ID:          3,
		Name:        "Separate Heaven and Earth",
		Description: "Press one palm up above the head and the other palm down beside the hip, stretching the torso in opposition.",
		Phases:      []string{"prepare", "separate", "hold", "switch"},
		PhaseHints: map[string]string{
			"prepare":  "both palms resting at the waist",
			"separate": "one palm presses up, the other presses down",
			"hold":     "full vertical stretch between the two palms",
			"switch":   "exchange the palms through center",
		},
		CommonMistakes: []string{"bent upper arm", "leaning sideways", "palms not opposed"},
	},
	4: {
		ID:          4,
		Name:        "Wise Owl Gazes Backwards",
		Description: "Keeping the body square, rotate the head to gaze behind while the arms rotate gently outward.",
		Phases:      []string{"prepare", "turn", "gaze", "return"},
		PhaseHints: map[string]string{
			"prepare": "stand tall, arms relaxed at the sides",
			"turn":    "rotate the head slowly to one side",
			"gaze":    "hold the backward gaze without twisting the hips",
			"return":  "bring the head back to center",
		},
		CommonMistakes: []string{"twisting the hips", "lifting the chin", "rushing the turn"},
	},
	5: {
		ID:          5,
		Name:        "Sway the Head and Shake the Tail",
		Description: "In a deep horse stance with hands on thighs, circle the upper body down and around to release heat.",
		Phases:      []string{"prepare", "sink", "sway", "return"},
		PhaseHints: map[string]string{
			"prepare": "wide stance, hands resting on the thighs",
			"sink":    "bend the knees into a deep horse stance",
			"sway":    "circle the torso and head toward one knee",
			"return":  "rise back to the upright stance",
		},
		CommonMistakes: []string{"straight knees", "narrow stance", "collapsing the chest"},
	},
	6: {
		ID:          6,
		Name:        "Two Hands Hold the Feet",
		Description: "Fold forward from the hips and clasp toward the feet, strengthening the kidneys and waist.",
		Phases:      []string{"prepare", "fold", "hold", "rise"},
		PhaseHints: map[string]string{
			"prepare": "feet hip width, hands sliding down the back of the legs",
			"fold":    "hinge forward, reaching toward the feet",
			"hold":    "hands near the feet, knees soft but not bent",
			"rise":    "roll back up one vertebra at a time",
		},
		CommonMistakes: []string{"deeply bent knees", "rounding from the shoulders", "bouncing"},
	},
	7: {
		ID:          7,
		Name:        "Clench the Fists and Glare Fiercely",
		Description: "From horse stance, punch slowly forward with a clenched fist and focused gaze.",
		Phases:      []string{"prepare", "punch", "hold", "retract"},
		PhaseHints: map[string]string{
			"prepare": "horse stance, fists chambered at the waist",
			"punch":   "extend one fist slowly at shoulder height",
			"hold":    "arm fully extended, body square",
			"retract": "draw the fist back to the waist",
		},
		CommonMistakes: []string{"narrow stance", "punching above shoulder height", "leaning into the punch"},
	},
	8: {
		ID:          8,
		Name:        "Bouncing on the Toes",
		Description: "With feet together and body vertical, rise onto the toes and drop gently to shake the spine loose.",
		Phases:      []string{"prepare", "rise", "drop", "settle"},
		PhaseHints: map[string]string{
			"prepare": "feet together, arms hanging at the sides",
			"rise":    "lift the heels, press up through the crown",
			"drop":    "release the heels with a soft bounce",
			"settle":  "stand quietly and breathe",
		},
		CommonMistakes: []string{"feet apart", "leaning forward", "stiff landing"},
	},
}
