package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inconshreveable/log15"
)

// ParseLevel converts a config log level into a log15 level.
// "warning" is accepted as an alias of "warn".
func ParseLevel(level string) (log15.Lvl, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	switch name {
	case "", "info":
		return log15.LvlInfo, nil
	case "warning":
		return log15.LvlWarn, nil
	}
	lvl, err := log15.LvlFromString(name)
	if err != nil {
		return log15.LvlInfo, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}

// Setup configures the root logger to write logfmt records to stdout
func Setup(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	log15.Root().SetHandler(log15.LvlFilterHandler(lvl, log15.StreamHandler(os.Stdout, log15.LogfmtFormat())))
	return nil
}

// New returns a child of the root logger tagged with the module name
func New(module string) log15.Logger {
	return log15.New("module", module)
}

// Discard returns a logger that drops every record
func Discard() log15.Logger {
	l := log15.New()
	l.SetHandler(log15.DiscardHandler())
	return l
}

// Middleware logs one record per request handled by a gin engine
func Middleware(logger log15.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ctx := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
		}
		if len(c.Errors) > 0 {
			ctx = append(ctx, "error", c.Errors.String())
		}

		switch {
		case status >= 500:
			logger.Error("request", ctx...)
		case status >= 400:
			logger.Warn("request", ctx...)
		default:
			logger.Debug("request", ctx...)
		}
	}
}
