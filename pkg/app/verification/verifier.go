package verification

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/NeuralTrust/BotTracker/pkg/common"
	"github.com/NeuralTrust/BotTracker/pkg/domain/site"
	"github.com/NeuralTrust/BotTracker/pkg/infra/httpx"
	"github.com/sirupsen/logrus"
)

const (
	MethodDNS  = "DNS"
	MethodFile = "FILE"

	DefaultTimeout = 5 * time.Second
)

// TXTResolver is satisfied by *net.Resolver.
type TXTResolver interface {
	LookupTXT(ctx context.Context, name string) ([]string, error)
}

// Verifier proves ownership of a domain with a DNS TXT record
// "aibot-detect=<token>", falling back to the token served at
// https://<domain>/.well-known/aibot-detect.txt.
type Verifier interface {
	Verify(ctx context.Context, d *site.Domain) (bool, string)
}

type verifier struct {
	logger   *logrus.Logger
	resolver TXTResolver
	client   httpx.Client
	timeout  time.Duration
}

func NewVerifier(logger *logrus.Logger, resolver TXTResolver, client httpx.Client, timeout time.Duration) Verifier {
	if resolver == nil {
		resolver = net.DefaultResolver
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &verifier{
		logger:   logger,
		resolver: resolver,
		client:   client,
		timeout:  timeout,
	}
}

func (v *verifier) Verify(ctx context.Context, d *site.Domain) (bool, string) {
	log := v.logger.WithFields(logrus.Fields{"domain_id": d.ID, "domain": d.Name})

	err := v.checkDNS(ctx, d)
	if err == nil {
		return true, MethodDNS
	}
	log.WithError(err).Info("dns verification failed")

	err = v.checkFile(ctx, d)
	if err == nil {
		return true, MethodFile
	}
	log.WithError(err).Info("file verification failed")
	return false, ""
}

func (v *verifier) checkDNS(ctx context.Context, d *site.Domain) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	records, err := v.resolver.LookupTXT(ctx, d.Name)
	if err != nil {
		return fmt.Errorf("txt lookup failed: %w", err)
	}
	want := common.VerificationRecordPrefix + d.VerificationToken
	for _, r := range records {
		if strings.Contains(r, want) {
			return nil
		}
	}
	return fmt.Errorf("no txt record contains %q", want)
}

func (v *verifier) checkFile(ctx context.Context, d *site.Domain) error {
	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	url := "https://" + d.Name + common.VerificationFilePath
	resp, err := v.client.Get(ctx, url)
	if err != nil {
		return fmt.Errorf("fetch %s failed: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), d.VerificationToken) {
		return fmt.Errorf("verification token not found in %s", url)
	}
	return nil
}
