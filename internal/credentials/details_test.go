package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildConnectionDetails_ServerName(t *testing.T) {
	tests := []struct {
		name     string
		server   string
		port     int
		expected string
	}{
		{"no port leaves server unchanged", "db.example.com", 0, "db.example.com"},
		{"port appended with comma", "db.example.com", 1433, "db.example.com,1433"},
		{"named instance gets port", `host\SQLEXPRESS`, 50123, `host\SQLEXPRESS,50123`},
		{"existing port wins over port field", "db.example.com,1500", 1433, "db.example.com,1500"},
		{"bare comma blocks append", "db,", 1433, "db,"},
		{"empty server with port", "", 1433, ",1433"},
		{"empty server without port", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := BuildConnectionDetails(&Credentials{Server: tt.server, Port: tt.port})
			assert.Equal(t, tt.expected, details.ServerName)
		})
	}
}

func TestBuildConnectionDetails_CopiesFields(t *testing.T) {
	creds := &Credentials{
		ProfileName:              "prod",
		PasswordCommand:          "pass show prod",
		Server:                   "sql01",
		Database:                 "orders",
		User:                     "app",
		Password:                 "s3cret",
		AuthenticationType:       "SqlLogin",
		AzureAccountToken:        "token",
		Encrypt:                  true,
		TrustServerCertificate:   true,
		PersistSecurityInfo:      true,
		ConnectTimeout:           15,
		ConnectRetryCount:        3,
		ConnectRetryInterval:     10,
		ApplicationName:          "sqlcreds",
		WorkstationID:            "ws1",
		ApplicationIntent:        "ReadOnly",
		CurrentLanguage:          "us_english",
		Pooling:                  true,
		MaxPoolSize:              100,
		MinPoolSize:              1,
		LoadBalanceTimeout:       30,
		Replication:              true,
		AttachDBFilename:         "orders.mdf",
		FailoverPartner:          "sql02",
		MultiSubnetFailover:      true,
		MultipleActiveResultSets: true,
		PacketSize:               8192,
		TypeSystemVersion:        "Latest",
	}

	details := BuildConnectionDetails(creds)

	assert.Equal(t, ConnectionDetails{
		ServerName:               "sql01",
		DatabaseName:             "orders",
		UserName:                 "app",
		Password:                 "s3cret",
		AuthenticationType:       "SqlLogin",
		AzureAccountToken:        "token",
		Encrypt:                  true,
		TrustServerCertificate:   true,
		PersistSecurityInfo:      true,
		ConnectTimeout:           15,
		ConnectRetryCount:        3,
		ConnectRetryInterval:     10,
		ApplicationName:          "sqlcreds",
		WorkstationID:            "ws1",
		ApplicationIntent:        "ReadOnly",
		CurrentLanguage:          "us_english",
		Pooling:                  true,
		MaxPoolSize:              100,
		MinPoolSize:              1,
		LoadBalanceTimeout:       30,
		Replication:              true,
		AttachDBFilename:         "orders.mdf",
		FailoverPartner:          "sql02",
		MultiSubnetFailover:      true,
		MultipleActiveResultSets: true,
		PacketSize:               8192,
		TypeSystemVersion:        "Latest",
	}, details)
}

func TestBuildConnectionDetails_DoesNotMutateInput(t *testing.T) {
	creds := &Credentials{Server: "sql01", Port: 1433}
	before := *creds

	first := BuildConnectionDetails(creds)
	second := BuildConnectionDetails(creds)

	assert.Equal(t, before, *creds)
	assert.Equal(t, first, second)
}

func TestBuildConnectionDetails_EmptyCredential(t *testing.T) {
	assert.Equal(t, ConnectionDetails{}, BuildConnectionDetails(&Credentials{}))
}

func TestConnectionDetails_Render(t *testing.T) {
	tests := []struct {
		name     string
		details  ConnectionDetails
		expected string
	}{
		{
			name:     "empty details",
			details:  ConnectionDetails{},
			expected: "",
		},
		{
			name: "sql login",
			details: ConnectionDetails{
				ServerName:   "sql01,1433",
				DatabaseName: "orders",
				UserName:     "app",
				Password:     "pw",
				Encrypt:      true,
			},
			expected: "Server=sql01,1433;Database=orders;User ID=app;Password=pw;Encrypt=True;",
		},
		{
			name: "integrated drops user and password",
			details: ConnectionDetails{
				ServerName:         "sql01",
				UserName:           "ignored",
				Password:           "ignored",
				AuthenticationType: "Integrated",
				ConnectTimeout:     30,
			},
			expected: "Server=sql01;Integrated Security=SSPI;Connect Timeout=30;",
		},
		{
			name: "values with separators are quoted",
			details: ConnectionDetails{
				ServerName: "sql01",
				Password:   `a;b"c`,
			},
			expected: `Server=sql01;Password="a;b""c";`,
		},
		{
			name: "supplied connection string wins",
			details: ConnectionDetails{
				ServerName:       "sql01",
				ConnectionString: "Server=other;Database=x;",
			},
			expected: "Server=other;Database=x;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.details.Render())
		})
	}
}

func TestConnectionDetails_Redacted(t *testing.T) {
	details := ConnectionDetails{
		ServerName:        "sql01",
		UserName:          "app",
		Password:          "s3cret",
		AzureAccountToken: "tok",
		ConnectionString:  "Server=sql01;User ID=app;Password=s3cret;",
	}

	redacted := details.Redacted()

	assert.Equal(t, "***", redacted.Password)
	assert.Equal(t, "***", redacted.AzureAccountToken)
	assert.Equal(t, "Server=sql01;User ID=app;Password=***;", redacted.ConnectionString)
	assert.Equal(t, "app", redacted.UserName)
	// original untouched
	assert.Equal(t, "s3cret", details.Password)
}

func TestConnectionDetails_RedactedQuotedSecrets(t *testing.T) {
	tests := []struct {
		name     string
		conn     string
		expected string
	}{
		{
			name:     "double quoted password with separator",
			conn:     `Server=sql01;Password="p;w0rd";User ID=app;`,
			expected: "Server=sql01;Password=***;User ID=app;",
		},
		{
			name:     "doubled quotes inside value",
			conn:     `Server=sql01;Password="a"";b""c";Database=orders;`,
			expected: "Server=sql01;Password=***;Database=orders;",
		},
		{
			name:     "single quoted pwd with escaped quote",
			conn:     `Pwd = 'it''s;secret' ;Server=sql01`,
			expected: "Pwd =***;Server=sql01",
		},
		{
			name:     "quote inside unquoted value is literal",
			conn:     `Server=sql01;Application Name=o"brien;Password=pw;`,
			expected: `Server=sql01;Application Name=o"brien;Password=***;`,
		},
		{
			name:     "unterminated quote masks the rest",
			conn:     `Server=sql01;Password="p;w0rd;User ID=app`,
			expected: "Server=sql01;Password=***",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redacted := ConnectionDetails{ConnectionString: tt.conn}.Redacted()
			assert.Equal(t, tt.expected, redacted.ConnectionString)
			assert.NotContains(t, redacted.ConnectionString, "w0rd")
		})
	}
}

func TestConnectionDetails_RedactedRenderedString(t *testing.T) {
	rendered := ConnectionDetails{ServerName: "sql01", UserName: "app", Password: `p;w"0rd`}.Render()

	redacted := ConnectionDetails{ConnectionString: rendered}.Redacted()

	assert.Equal(t, "Server=sql01;User ID=app;Password=***;", redacted.ConnectionString)
}

func TestConnectionDetails_RedactedLeavesEmptySecrets(t *testing.T) {
	redacted := ConnectionDetails{ServerName: "sql01"}.Redacted()
	assert.Empty(t, redacted.Password)
	assert.Empty(t, redacted.AzureAccountToken)
}
