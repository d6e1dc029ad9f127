package leads

import (
	"context"
	"fmt"

	"github.com/autostream-agent/server/internal/agent/model"
	errx "github.com/autostream-agent/server/internal/core/error"
	logx "github.com/autostream-agent/server/pkg/logger"
)

// LogCapture is the mock backend action: it validates the record and logs the
// captured tuple. The orchestrator guarantees it runs at most once per
// completed lead episode.
type LogCapture struct{}

func NewLogCapture() *LogCapture {
	return &LogCapture{}
}

func (c *LogCapture) Capture(_ context.Context, lead model.Lead) error {
	if !lead.Complete() {
		return fmt.Errorf("%w: missing required fields", errx.ErrToolInvocation)
	}

	logx.Info().
		Str("name", lead.Name).
		Str("email", lead.Email).
		Str("platform", lead.Platform).
		Msg("lead captured successfully")
	return nil
}

var _ model.LeadCapture = (*LogCapture)(nil)
