package sqldb

type Conf struct {
	Type string `json:"type"` // pgsql, dsql, mysql, ...
	Host string `json:"host"` // hostname, or cluster endpoint for dsql
	Port int    `json:"port"`
	User string `json:"user"`
	PW   string `json:"pw"` // unused for dsql; IAM auth token generated per connection
	DB   string `json:"db"`
	TZ   string `json:"tz"`  // Connection Timezone
	DSN  string `json:"dsn"` // To Overwrite Default DSN

	// dsql only
	Region         string `json:"region"`           // AWS region of the cluster
	TokenExpirySec int    `json:"token_expiry_sec"` // auth token TTL; 0 = SDK default
}
