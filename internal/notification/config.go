package notification

// SMTPConfig holds connection parameters for the SMTP transport.
type SMTPConfig struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	FromAddr   string `json:"from_address"`
	Encryption string `json:"encryption"` // "none", "starttls", "ssl_tls"
}

// Configured reports whether enough is set to attempt SMTP delivery.
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.FromAddr != ""
}

// GatewayConfig holds the endpoint and credential of an HTTP delivery gateway
// (SMS or push).
type GatewayConfig struct {
	URL   string `json:"url"`
	Token string `json:"token"`
}

// Configured reports whether the gateway has an endpoint.
func (c GatewayConfig) Configured() bool {
	return c.URL != ""
}
