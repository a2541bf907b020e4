// Package credentials holds the SQL Server credential record and its
// conversion into the connection details consumed by the driver layer.
package credentials

import "strings"

// AuthType identifies how a connection authenticates.
type AuthType int

const (
	// AuthSQLLogin authenticates with an explicit user name and password.
	AuthSQLLogin AuthType = iota
	// AuthIntegrated authenticates with the identity of the host account.
	AuthIntegrated
)

// AuthTypeToString returns the canonical stored value for an auth type.
func AuthTypeToString(t AuthType) string {
	switch t {
	case AuthSQLLogin:
		return "SqlLogin"
	case AuthIntegrated:
		return "Integrated"
	default:
		return ""
	}
}

// IsEmpty reports whether s is empty or whitespace only.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Credentials describes how to reach a database instance. Every field is
// optional; the zero value means the field was not supplied.
type Credentials struct {
	ProfileName     string `mapstructure:"name" json:"profileName,omitempty" yaml:"name,omitempty"`
	PasswordCommand string `mapstructure:"password_command" json:"-" yaml:"password_command,omitempty"`

	Server             string `mapstructure:"server" json:"server,omitempty" yaml:"server,omitempty"`
	Port               int    `mapstructure:"port" json:"port,omitempty" yaml:"port,omitempty"`
	Database           string `mapstructure:"database" json:"database,omitempty" yaml:"database,omitempty"`
	User               string `mapstructure:"user" json:"user,omitempty" yaml:"user,omitempty"`
	Password           string `mapstructure:"password" json:"password,omitempty" yaml:"password,omitempty"`
	AuthenticationType string `mapstructure:"authentication_type" json:"authenticationType,omitempty" yaml:"authentication_type,omitempty"`
	AzureAccountToken  string `mapstructure:"azure_account_token" json:"azureAccountToken,omitempty" yaml:"azure_account_token,omitempty"`
	ConnectionString   string `mapstructure:"connection_string" json:"connectionString,omitempty" yaml:"connection_string,omitempty"`

	Encrypt                  bool   `mapstructure:"encrypt" json:"encrypt,omitempty" yaml:"encrypt,omitempty"`
	TrustServerCertificate   bool   `mapstructure:"trust_server_certificate" json:"trustServerCertificate,omitempty" yaml:"trust_server_certificate,omitempty"`
	PersistSecurityInfo      bool   `mapstructure:"persist_security_info" json:"persistSecurityInfo,omitempty" yaml:"persist_security_info,omitempty"`
	ConnectTimeout           int    `mapstructure:"connect_timeout" json:"connectTimeout,omitempty" yaml:"connect_timeout,omitempty"`
	ConnectRetryCount        int    `mapstructure:"connect_retry_count" json:"connectRetryCount,omitempty" yaml:"connect_retry_count,omitempty"`
	ConnectRetryInterval     int    `mapstructure:"connect_retry_interval" json:"connectRetryInterval,omitempty" yaml:"connect_retry_interval,omitempty"`
	ApplicationName          string `mapstructure:"application_name" json:"applicationName,omitempty" yaml:"application_name,omitempty"`
	WorkstationID            string `mapstructure:"workstation_id" json:"workstationId,omitempty" yaml:"workstation_id,omitempty"`
	ApplicationIntent        string `mapstructure:"application_intent" json:"applicationIntent,omitempty" yaml:"application_intent,omitempty"`
	CurrentLanguage          string `mapstructure:"current_language" json:"currentLanguage,omitempty" yaml:"current_language,omitempty"`
	Pooling                  bool   `mapstructure:"pooling" json:"pooling,omitempty" yaml:"pooling,omitempty"`
	MaxPoolSize              int    `mapstructure:"max_pool_size" json:"maxPoolSize,omitempty" yaml:"max_pool_size,omitempty"`
	MinPoolSize              int    `mapstructure:"min_pool_size" json:"minPoolSize,omitempty" yaml:"min_pool_size,omitempty"`
	LoadBalanceTimeout       int    `mapstructure:"load_balance_timeout" json:"loadBalanceTimeout,omitempty" yaml:"load_balance_timeout,omitempty"`
	Replication              bool   `mapstructure:"replication" json:"replication,omitempty" yaml:"replication,omitempty"`
	AttachDBFilename         string `mapstructure:"attach_db_filename" json:"attachDbFilename,omitempty" yaml:"attach_db_filename,omitempty"`
	FailoverPartner          string `mapstructure:"failover_partner" json:"failoverPartner,omitempty" yaml:"failover_partner,omitempty"`
	MultiSubnetFailover      bool   `mapstructure:"multi_subnet_failover" json:"multiSubnetFailover,omitempty" yaml:"multi_subnet_failover,omitempty"`
	MultipleActiveResultSets bool   `mapstructure:"multiple_active_result_sets" json:"multipleActiveResultSets,omitempty" yaml:"multiple_active_result_sets,omitempty"`
	PacketSize               int    `mapstructure:"packet_size" json:"packetSize,omitempty" yaml:"packet_size,omitempty"`
	TypeSystemVersion        string `mapstructure:"type_system_version" json:"typeSystemVersion,omitempty" yaml:"type_system_version,omitempty"`
}

// IsPasswordBased reports whether the credential authenticates with a user
// name and password. An unset authentication type implies SQL login.
func (c *Credentials) IsPasswordBased() bool {
	authType := c.AuthenticationType
	if IsEmpty(authType) {
		authType = AuthTypeToString(AuthSQLLogin)
	}
	return authType == AuthTypeToString(AuthSQLLogin)
}

// Clone returns a shallow copy of the credential.
func (c *Credentials) Clone() *Credentials {
	clone := *c
	return &clone
}
