package credentials

import (
	"strconv"
	"strings"
)

const redactedValue = "***"

// ConnectionDetails is the driver-facing form of a credential record.
type ConnectionDetails struct {
	ServerName         string `json:"serverName,omitempty" yaml:"serverName,omitempty"`
	DatabaseName       string `json:"databaseName,omitempty" yaml:"databaseName,omitempty"`
	UserName           string `json:"userName,omitempty" yaml:"userName,omitempty"`
	Password           string `json:"password,omitempty" yaml:"password,omitempty"`
	AuthenticationType string `json:"authenticationType,omitempty" yaml:"authenticationType,omitempty"`
	AzureAccountToken  string `json:"azureAccountToken,omitempty" yaml:"azureAccountToken,omitempty"`
	ConnectionString   string `json:"connectionString,omitempty" yaml:"connectionString,omitempty"`

	Encrypt                  bool   `json:"encrypt,omitempty" yaml:"encrypt,omitempty"`
	TrustServerCertificate   bool   `json:"trustServerCertificate,omitempty" yaml:"trustServerCertificate,omitempty"`
	PersistSecurityInfo      bool   `json:"persistSecurityInfo,omitempty" yaml:"persistSecurityInfo,omitempty"`
	ConnectTimeout           int    `json:"connectTimeout,omitempty" yaml:"connectTimeout,omitempty"`
	ConnectRetryCount        int    `json:"connectRetryCount,omitempty" yaml:"connectRetryCount,omitempty"`
	ConnectRetryInterval     int    `json:"connectRetryInterval,omitempty" yaml:"connectRetryInterval,omitempty"`
	ApplicationName          string `json:"applicationName,omitempty" yaml:"applicationName,omitempty"`
	WorkstationID            string `json:"workstationId,omitempty" yaml:"workstationId,omitempty"`
	ApplicationIntent        string `json:"applicationIntent,omitempty" yaml:"applicationIntent,omitempty"`
	CurrentLanguage          string `json:"currentLanguage,omitempty" yaml:"currentLanguage,omitempty"`
	Pooling                  bool   `json:"pooling,omitempty" yaml:"pooling,omitempty"`
	MaxPoolSize              int    `json:"maxPoolSize,omitempty" yaml:"maxPoolSize,omitempty"`
	MinPoolSize              int    `json:"minPoolSize,omitempty" yaml:"minPoolSize,omitempty"`
	LoadBalanceTimeout       int    `json:"loadBalanceTimeout,omitempty" yaml:"loadBalanceTimeout,omitempty"`
	Replication              bool   `json:"replication,omitempty" yaml:"replication,omitempty"`
	AttachDBFilename         string `json:"attachDbFilename,omitempty" yaml:"attachDbFilename,omitempty"`
	FailoverPartner          string `json:"failoverPartner,omitempty" yaml:"failoverPartner,omitempty"`
	MultiSubnetFailover      bool   `json:"multiSubnetFailover,omitempty" yaml:"multiSubnetFailover,omitempty"`
	MultipleActiveResultSets bool   `json:"multipleActiveResultSets,omitempty" yaml:"multipleActiveResultSets,omitempty"`
	PacketSize               int    `json:"packetSize,omitempty" yaml:"packetSize,omitempty"`
	TypeSystemVersion        string `json:"typeSystemVersion,omitempty" yaml:"typeSystemVersion,omitempty"`
}

// BuildConnectionDetails maps a credential record onto connection details.
// Fields are copied verbatim with no defaulting. The port is folded into the
// server name as "server,port" unless the server already carries one.
func BuildConnectionDetails(c *Credentials) ConnectionDetails {
	return ConnectionDetails{
		ServerName:               serverAddress(c.Server, c.Port),
		DatabaseName:             c.Database,
		UserName:                 c.User,
		Password:                 c.Password,
		AuthenticationType:       c.AuthenticationType,
		AzureAccountToken:        c.AzureAccountToken,
		ConnectionString:         c.ConnectionString,
		Encrypt:                  c.Encrypt,
		TrustServerCertificate:   c.TrustServerCertificate,
		PersistSecurityInfo:      c.PersistSecurityInfo,
		ConnectTimeout:           c.ConnectTimeout,
		ConnectRetryCount:        c.ConnectRetryCount,
		ConnectRetryInterval:     c.ConnectRetryInterval,
		ApplicationName:          c.ApplicationName,
		WorkstationID:            c.WorkstationID,
		ApplicationIntent:        c.ApplicationIntent,
		CurrentLanguage:          c.CurrentLanguage,
		Pooling:                  c.Pooling,
		MaxPoolSize:              c.MaxPoolSize,
		MinPoolSize:              c.MinPoolSize,
		LoadBalanceTimeout:       c.LoadBalanceTimeout,
		Replication:              c.Replication,
		AttachDBFilename:         c.AttachDBFilename,
		FailoverPartner:          c.FailoverPartner,
		MultiSubnetFailover:      c.MultiSubnetFailover,
		MultipleActiveResultSets: c.MultipleActiveResultSets,
		PacketSize:               c.PacketSize,
		TypeSystemVersion:        c.TypeSystemVersion,
	}
}

func serverAddress(server string, port int) string {
	if port != 0 && !strings.Contains(server, ",") {
		return server + "," + strconv.Itoa(port)
	}
	return server
}

// Redacted returns a copy with secrets masked, safe for logs and display.
func (d ConnectionDetails) Redacted() ConnectionDetails {
	if d.Password != "" {
		d.Password = redactedValue
	}
	if d.AzureAccountToken != "" {
		d.AzureAccountToken = redactedValue
	}
	if d.ConnectionString != "" {
		d.ConnectionString = redactConnectionString(d.ConnectionString)
	}
	return d
}

// Render renders the details as a "key=value;" connection string.
// A connection string supplied on the credential wins over the fields.
func (d ConnectionDetails) Render() string {
	if d.ConnectionString != "" {
		return d.ConnectionString
	}

	var b connStringBuilder
	b.add("Server", d.ServerName)
	b.add("Database", d.DatabaseName)
	if d.AuthenticationType == AuthTypeToString(AuthIntegrated) {
		b.add("Integrated Security", "SSPI")
	} else {
		b.add("User ID", d.UserName)
		b.add("Password", d.Password)
	}
	b.addBool("Encrypt", d.Encrypt)
	b.addBool("TrustServerCertificate", d.TrustServerCertificate)
	b.addBool("Persist Security Info", d.PersistSecurityInfo)
	b.addInt("Connect Timeout", d.ConnectTimeout)
	b.addInt("ConnectRetryCount", d.ConnectRetryCount)
	b.addInt("ConnectRetryInterval", d.ConnectRetryInterval)
	b.add("Application Name", d.ApplicationName)
	b.add("Workstation ID", d.WorkstationID)
	b.add("ApplicationIntent", d.ApplicationIntent)
	b.add("Current Language", d.CurrentLanguage)
	b.addBool("Pooling", d.Pooling)
	b.addInt("Max Pool Size", d.MaxPoolSize)
	b.addInt("Min Pool Size", d.MinPoolSize)
	b.addInt("Load Balance Timeout", d.LoadBalanceTimeout)
	b.addBool("Replication", d.Replication)
	b.add("AttachDbFilename", d.AttachDBFilename)
	b.add("Failover Partner", d.FailoverPartner)
	b.addBool("MultiSubnetFailover", d.MultiSubnetFailover)
	b.addBool("MultipleActiveResultSets", d.MultipleActiveResultSets)
	b.addInt("Packet Size", d.PacketSize)
	b.add("Type System Version", d.TypeSystemVersion)
	return b.String()
}

type connStringBuilder struct {
	parts []string
}

func (b *connStringBuilder) add(key, value string) {
	if value == "" {
		return
	}
	b.parts = append(b.parts, key+"="+quoteValue(value))
}

func (b *connStringBuilder) addBool(key string, value bool) {
	if value {
		b.parts = append(b.parts, key+"=True")
	}
}

func (b *connStringBuilder) addInt(key string, value int) {
	if value != 0 {
		b.parts = append(b.parts, key+"="+strconv.Itoa(value))
	}
}

func (b *connStringBuilder) String() string {
	if len(b.parts) == 0 {
		return ""
	}
	return strings.Join(b.parts, ";") + ";"
}

// quoteValue wraps values containing separators in double quotes, doubling
// any embedded quote.
func quoteValue(v string) string {
	if !strings.ContainsAny(v, ";=\"'") && strings.TrimSpace(v) == v {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

// redactConnectionString masks password and token values in a raw
// "key=value;" connection string.
func redactConnectionString(s string) string {
	parts := splitConnectionString(s)
	for i, part := range parts {
		key, _, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "password", "pwd", "accesstoken":
			parts[i] = key + "=" + redactedValue
		}
	}
	return strings.Join(parts, ";")
}

// splitConnectionString splits s on ';' outside quoted values. A value
// starting with ' or " runs to the matching quote; a doubled quote inside it
// is an escaped quote. An unterminated quote swallows the rest of s.
func splitConnectionString(s string) []string {
	var parts []string
	start := 0
	var quote byte
	inValue, valueStarted := false, false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case quote != 0:
			if ch == quote {
				if i+1 < len(s) && s[i+1] == quote {
					i++
					continue
				}
				quote = 0
			}
		case ch == ';':
			parts = append(parts, s[start:i])
			start = i + 1
			inValue, valueStarted = false, false
		case !inValue:
			inValue = ch == '='
		case !valueStarted:
			if ch == ' ' || ch == '\t' {
				continue
			}
			valueStarted = true
			if ch == '"' || ch == '\'' {
				quote = ch
			}
		}
	}
	return append(parts, s[start:])
}
