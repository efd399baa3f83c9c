package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0" validate:"required"`
	Port                 int           `env:"PORT,default=8080" validate:"min=1,max=65535"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO" validate:"required"`
	BadgerFilepath       string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	JWTSecret            string        `env:"JWT_SECRET,required=true" validate:"min=16"`
	AuthTokenDuration    time.Duration `env:"AUTH_TOKEN_DURATION,default=24h" validate:"gt=0"`
	TypingTimeout        time.Duration `env:"TYPING_TIMEOUT,default=3s" validate:"gt=0"`
	StatusTTL            time.Duration `env:"STATUS_TTL,default=24h" validate:"gt=0"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256" validate:"min=1"`
	LimitMessages        *int          `env:"LIMIT_MESSAGES" validate:"omitempty,min=1"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s" validate:"gt=0"`
	MetricInterval       time.Duration `env:"METRIC_INTERVAL,default=1m" validate:"gte=0"`
	CharReplacement      string        `env:"CHARACTER_REPLACEMENT,default=*"`
	EnableModeration     bool          `env:"ENABLE_MODERATION,default=true"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`
	DebugPort            int           `env:"DEBUG_PORT,default=8081" validate:"min=0,max=65535"`
}

// Load reads an optional .env file, then the environment, and validates the result.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	_ = godotenv.Load(files...)

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	if _, err := CharacterRune(config.CharReplacement); err != nil {
		return Config{}, err
	}
	return config, nil
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
