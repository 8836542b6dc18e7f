package bot

// Verb is the closed set of recognized commands. Dispatch is an
// exhaustive switch over this enum rather than a string switch with a
// default fallthrough, so adding a verb without handling it fails review,
// not runtime.
type Verb int

const (
	VerbUnknown Verb = iota

	// Session lifecycle.
	VerbSetup
	VerbJoin
	VerbAddBot
	VerbLeave
	VerbStart
	VerbPlay
	VerbPick
	VerbMyHand
	VerbEnd

	// Deck authoring.
	VerbMakeDeck
	VerbMakeResponseCard
	VerbMakePromptCard
	VerbViewDeck
	VerbAllDecks
	VerbDeckFile
)

// ParseVerb maps a command word to its Verb. Unrecognized words map to
// VerbUnknown, which the dispatcher ignores.
func ParseVerb(word string) Verb {
	switch word {
	case "setup":
		return VerbSetup
	case "join":
		return VerbJoin
	case "addbot":
		return VerbAddBot
	case "leave":
		return VerbLeave
	case "start":
		return VerbStart
	case "play":
		return VerbPlay
	case "pick":
		return VerbPick
	case "myhand":
		return VerbMyHand
	case "end":
		return VerbEnd
	case "makedeck":
		return VerbMakeDeck
	case "makeresponsecard":
		return VerbMakeResponseCard
	case "makepromptcard":
		return VerbMakePromptCard
	case "viewdeck":
		return VerbViewDeck
	case "alldecks":
		return VerbAllDecks
	case "deckfile":
		return VerbDeckFile
	default:
		return VerbUnknown
	}
}

// String returns the command word for a Verb.
func (v Verb) String() string {
	switch v {
	case VerbSetup:
		return "setup"
	case VerbJoin:
		return "join"
	case VerbAddBot:
		return "addbot"
	case VerbLeave:
		return "leave"
	case VerbStart:
		return "start"
	case VerbPlay:
		return "play"
	case VerbPick:
		return "pick"
	case VerbMyHand:
		return "myhand"
	case VerbEnd:
		return "end"
	case VerbMakeDeck:
		return "makedeck"
	case VerbMakeResponseCard:
		return "makeresponsecard"
	case VerbMakePromptCard:
		return "makepromptcard"
	case VerbViewDeck:
		return "viewdeck"
	case VerbAllDecks:
		return "alldecks"
	case VerbDeckFile:
		return "deckfile"
	default:
		return "unknown"
	}
}
