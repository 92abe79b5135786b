package server

// Config is read from the environment (a .env file is loaded first when
// present).
type Config struct {
	Port      string `env:"PORT" envDefault:"7777"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"morghi-dev-secret"`
	Debug     bool   `env:"DEBUG" envDefault:"false"`
}
