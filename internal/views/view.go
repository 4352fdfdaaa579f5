package views

import (
	"context"
	"fmt"
	"time"

	"rates-bot/internal/apperrors"
	"rates-bot/internal/models"
)

// RatesSource is where views read rates from; services.RatesService in
// production, so reads go through the cache.
type RatesSource interface {
	Latest(ctx context.Context, base string) (*models.RateSnapshot, error)
	History(ctx context.Context, base, symbols string, startAt, endAt *time.Time) (*models.History, error)
}

// Response is either a text reply or a PNG image.
type Response struct {
	Text  string
	Image []byte
}

func (r Response) IsImage() bool {
	return len(r.Image) > 0
}

type Renderer interface {
	Render(ctx context.Context, args []string) (Response, error)
}

// Render runs r behind the error boundary: the returned Response is always
// deliverable. Validation and API failures show their own message, anything
// else (panics included) shows the generic internal error. err is the
// original failure, for logging only.
func Render(ctx context.Context, r Renderer, args []string) (resp Response, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("render panic: %v", rec)
			resp = Response{Text: apperrors.MsgInternal}
		}
	}()

	resp, err = r.Render(ctx, args)
	if err != nil {
		return Response{Text: apperrors.UserMessage(err)}, err
	}
	return resp, nil
}
