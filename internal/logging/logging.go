// Package logging configures the logrus logger used by lessel.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// New returns a logger writing text lines to w at the given level.
func New(w io.Writer, level string, colors bool) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			ForceColors:      colors,
			DisableColors:    !colors,
			DisableTimestamp: true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: lvl,
	}, nil
}
