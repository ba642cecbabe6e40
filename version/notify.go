package version

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aiko-cli/aiko/color"
	"github.com/aiko-cli/aiko/constant"
	"github.com/aiko-cli/aiko/key"
	"github.com/aiko-cli/aiko/style"
	"github.com/spf13/viper"
)

// Notify prints a notice to w when cli.auto_update is on and a newer release exists.
func Notify(ctx context.Context, w io.Writer, c *Checker) {
	if !viper.GetBool(key.CliAutoUpdate) {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := c.Check(ctx)
	if err != nil {
		logger.Warnf("update check: %v", err)
		return
	}
	if !res.UpdateAvailable() {
		return
	}

	fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(res.Latest),
		style.Faint(fmt.Sprintf("(You're on %s)", res.Current)),
		style.Faint(constant.ReleasesURL),
	)
}
