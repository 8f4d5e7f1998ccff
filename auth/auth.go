package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/sepnoty-tech/sepnoty-api/httpx"
	"github.com/sepnoty-tech/sepnoty-api/logger"
)

// Identity is the resolved caller of a request. Handlers only ever see this;
// token parsing stays inside the verifiers.
type Identity struct {
	UserID  uint
	Email   string
	Name    string
	IsAdmin bool
}

// Verifier turns a bearer credential into an Identity. Verifiers return an
// error instead of panicking or throwing so the chain can move on.
type Verifier interface {
	Name() string
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Chain tries each verifier in order and returns the first identity.
type Chain struct {
	verifiers []Verifier
}

func NewChain(verifiers ...Verifier) *Chain {
	return &Chain{verifiers: verifiers}
}

func (c *Chain) Resolve(ctx context.Context, token string) (*Identity, error) {
	for _, v := range c.verifiers {
		ident, err := v.Verify(ctx, token)
		if err == nil {
			return ident, nil
		}
		logger.L().Debug("credential rejected",
			zap.String("verifier", v.Name()), zap.Error(err))
	}
	return nil, httpx.Unauthorized("Invalid or expired token")
}
