package prompt

import (
	"context"
	"fmt"

	"github.com/willibrandon/sqlcreds/internal/credentials"
	"github.com/willibrandon/sqlcreds/internal/logger"
)

// Prompt and placeholder text.
const (
	ServerPrompt        = "Server name"
	ServerPlaceholder   = `hostname\instance or <server>.database.windows.net`
	DatabasePrompt      = "Database name"
	DatabasePlaceholder = "[Optional] Database to connect (press Enter to connect to <default> database)"
	AuthTypePrompt      = "Authentication Type"
	UsernamePrompt      = "User name"
	UsernamePlaceholder = "User name (SQL Login)"
	PasswordPrompt      = "Password"
	PasswordPlaceholder = "Password (SQL Login)"

	AuthTypeSQLName        = "SQL Login"
	AuthTypeIntegratedName = "Integrated Authentication"
)

// AuthChoice is a selectable authentication mode.
type AuthChoice struct {
	Name  string
	Value string
}

// ListAuthChoices returns the authentication modes offered on plat, SQL
// login first.
func ListAuthChoices(plat Platform) []AuthChoice {
	choices := []AuthChoice{
		{Name: AuthTypeSQLName, Value: credentials.AuthTypeToString(credentials.AuthSQLLogin)},
	}
	if plat.SupportsIntegratedAuth() {
		// TODO: store AuthIntegrated once the driver layer accepts it; the
		// value currently matches SQL login.
		choices = append(choices, AuthChoice{
			Name:  AuthTypeIntegratedName,
			Value: credentials.AuthTypeToString(credentials.AuthSQLLogin),
		})
	}
	return choices
}

// ValidateRequiredString returns an error naming field when value is blank.
func ValidateRequiredString(field, value string) error {
	if credentials.IsEmpty(value) {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// BuildQuestions returns the five credential questions in fixed order:
// server, database, authentication type, user, password.
func BuildQuestions(promptForDatabaseName, passwordRequired bool, plat Platform) []Question {
	authChoices := ListAuthChoices(plat)

	return []Question{
		{
			Name:        FieldServer,
			Type:        Input,
			Message:     ServerPrompt,
			Placeholder: ServerPlaceholder,
			ShouldAsk: func(c *credentials.Credentials) bool {
				return credentials.IsEmpty(c.Server)
			},
			Validate: func(value string) error {
				return ValidateRequiredString(ServerPrompt, value)
			},
			Apply: func(c *credentials.Credentials, value string) {
				c.Server = value
			},
		},
		{
			Name:        FieldDatabase,
			Type:        Input,
			Message:     DatabasePrompt,
			Placeholder: DatabasePlaceholder,
			ShouldAsk: func(*credentials.Credentials) bool {
				return promptForDatabaseName
			},
			Apply: func(c *credentials.Credentials, value string) {
				c.Database = value
			},
		},
		{
			Name:    FieldAuthenticationType,
			Type:    List,
			Message: AuthTypePrompt,
			Choices: authChoices,
			ShouldAsk: func(c *credentials.Credentials) bool {
				return credentials.IsEmpty(c.AuthenticationType) && len(authChoices) > 1
			},
			Apply: func(c *credentials.Credentials, value string) {
				c.AuthenticationType = value
			},
		},
		{
			Name:        FieldUser,
			Type:        Input,
			Message:     UsernamePrompt,
			Placeholder: UsernamePlaceholder,
			ShouldAsk: func(c *credentials.Credentials) bool {
				return credentials.IsEmpty(c.User) && c.IsPasswordBased()
			},
			Validate: func(value string) error {
				return ValidateRequiredString(UsernamePrompt, value)
			},
			Apply: func(c *credentials.Credentials, value string) {
				c.User = value
			},
		},
		{
			Name:        FieldPassword,
			Type:        Password,
			Message:     PasswordPrompt,
			Placeholder: PasswordPlaceholder,
			ShouldAsk: func(c *credentials.Credentials) bool {
				return c.Password == "" && c.IsPasswordBased()
			},
			Validate: func(value string) error {
				if passwordRequired {
					return ValidateRequiredString(PasswordPrompt, value)
				}
				return nil
			},
			Apply: func(c *credentials.Credentials, value string) {
				c.Password = value
			},
		},
	}
}

// EnsureRequiredFields asks p for any required field missing from c. It
// returns c, filled in place, or nil when the user cancelled.
func EnsureRequiredFields(ctx context.Context, c *credentials.Credentials, passwordRequired bool, p Prompter, plat Platform) (*credentials.Credentials, error) {
	questions := BuildQuestions(false, passwordRequired, plat)

	logger.Debug("Prompting for required connection fields",
		"profile", c.ProfileName,
		"password_required", passwordRequired,
	)

	answers, err := p.Prompt(ctx, questions, c)
	if err != nil {
		return nil, fmt.Errorf("prompt for connection fields: %w", err)
	}
	if answers == nil {
		logger.Info("Connection prompt cancelled", "profile", c.ProfileName)
		return nil, nil
	}

	logger.Debug("Connection fields collected", "answered", len(answers))
	return c, nil
}
