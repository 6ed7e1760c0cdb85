package internal

// Config gathers every runtime knob of the service. The account and
// private-chat surfaces are feature flags so one binary covers every
// deployment variant instead of forked code paths.
type Config struct {
	Host           string `env:"HOST,default=0.0.0.0"`
	Port           int    `env:"PORT,default=3000"`
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
	LogLevel       string `env:"LOG_LEVEL,default=info"`

	HistoryLimit     int `env:"HISTORY_LIMIT,default=100"`
	ActiveUsersLimit int `env:"ACTIVE_USERS_LIMIT,default=50"`

	EnableAccounts     bool `env:"ENABLE_ACCOUNTS,default=true"`
	EnablePrivateChats bool `env:"ENABLE_PRIVATE_CHATS,default=true"`
}
