package auth

import (
	"context"
	"fmt"

	"yamdb/internal/infra/mail"
)

const confirmationSubject = "Your confirmation code"

func sendConfirmationCode(ctx context.Context, to, username, code string) {
	body := fmt.Sprintf(
		"Hello, %s!\n\nYour confirmation code: %s\n\nExchange it for a token at POST /api/v1/auth/token.",
		username, code,
	)
	mail.SendBestEffort(ctx, to, confirmationSubject, body)
}
