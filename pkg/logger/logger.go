package logger

import "go.uber.org/zap"

// New builds the process logger. Development mode gets the console
// encoder, everything else the production JSON encoder.
func New(env string) *zap.Logger {
	var (
		l   *zap.Logger
		err error
	)
	if env == "development" {
		l, err = zap.NewDevelopment()
	} else {
		l, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return l
}
