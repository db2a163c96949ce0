package domain

// AuthMethod identifies how GitHub calls are authenticated.
type AuthMethod string

const (
	// AuthSession uses the logged-in gh CLI session.
	AuthSession AuthMethod = "session"
	// AuthToken uses a bearer token against the REST API.
	AuthToken AuthMethod = "token"
)

// Auth is the resolved authentication state for a run.
// It is chosen once and threaded through the orchestrator.
type Auth struct {
	Method AuthMethod
	Token  string // set only for AuthToken
}

// AuthChoice is one of the options offered by the interactive auth prompt.
type AuthChoice int

const (
	// AuthChoiceSession instructs the user to authenticate the gh CLI
	// out-of-band and retry; the current run aborts.
	AuthChoiceSession AuthChoice = iota + 1
	// AuthChoiceToken asks for a personal access token and proceeds.
	AuthChoiceToken
	// AuthChoiceSkip aborts GitHub integration without failing the task.
	AuthChoiceSkip
)

// ParseAuthChoice maps raw prompt input to an AuthChoice.
func ParseAuthChoice(input string) (AuthChoice, error) {
	switch input {
	case "1":
		return AuthChoiceSession, nil
	case "2":
		return AuthChoiceToken, nil
	case "3":
		return AuthChoiceSkip, nil
	default:
		return 0, ErrInvalidChoice
	}
}
