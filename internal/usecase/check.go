package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"es-update-notifier/internal/domain"
)

type DomainLister interface {
	ListDomainNames(ctx context.Context) ([]string, error)
}

type DomainInspector interface {
	DescribeDomain(ctx context.Context, name string) (domain.Domain, error)
}

type AliasResolver interface {
	Alias(ctx context.Context) (string, error)
}

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type Notifier interface {
	Send(ctx context.Context, n domain.Notification) error
}

// NotifierFactory builds a Notifier once the chat token is known.
type NotifierFactory func(token string) (Notifier, error)

// Config holds the per-deployment settings of a CheckService.
type Config struct {
	TokenParameter  string
	Channel         string
	Region          string
	ReleaseNotesURL string
}

type CheckService struct {
	domains     DomainLister
	inspector   DomainInspector
	accounts    AliasResolver
	params      ParamGetter
	newNotifier NotifierFactory
	cfg         Config
	logger      *slog.Logger
}

type CheckInput struct {
	RunID string
}

// Report summarises one run. It is only logged, never stored.
type Report struct {
	RunID               string
	DomainsFound        int
	InspectionFailures  int
	UpToDate            int
	UpdatesAvailable    int
	Notified            int
	NotificationErrors  int
	NotificationsMissed int
}

// tokenPayload is the JSON shape accepted for the token parameter in
// addition to a raw token string.
type tokenPayload struct {
	Token string `json:"token"`
}

func NewCheckService(l DomainLister, i DomainInspector, a AliasResolver, p ParamGetter, nf NotifierFactory, cfg Config, logger *slog.Logger) (*CheckService, error) {
	if l == nil {
		return nil, errors.New("usecase: domain lister must not be nil")
	}
	if i == nil {
		return nil, errors.New("usecase: domain inspector must not be nil")
	}
	if a == nil {
		return nil, errors.New("usecase: alias resolver must not be nil")
	}
	if p == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	if nf == nil {
		return nil, errors.New("usecase: notifier factory must not be nil")
	}
	cfg.TokenParameter = strings.TrimSpace(cfg.TokenParameter)
	if cfg.TokenParameter == "" {
		return nil, errors.New("usecase: token parameter must not be empty")
	}
	cfg.Channel = strings.TrimSpace(cfg.Channel)
	if cfg.Channel == "" {
		return nil, errors.New("usecase: channel must not be empty")
	}
	if strings.TrimSpace(cfg.ReleaseNotesURL) == "" {
		cfg.ReleaseNotesURL = domain.DefaultReleaseNotesURL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckService{
		domains:     l,
		inspector:   i,
		accounts:    a,
		params:      p,
		newNotifier: nf,
		cfg:         cfg,
		logger:      logger,
	}, nil
}

// Check lists every search domain and sends one notification per domain
// with a pending service software update. Failures are logged and never
// abort the run.
func (s *CheckService) Check(ctx context.Context, in CheckInput) Report {
	runID := strings.TrimSpace(in.RunID)
	if runID == "" {
		runID = newUUID()
	}
	r := &run{
		svc:    s,
		log:    s.logger.With("run_id", runID),
		report: Report{RunID: runID},
	}

	names, err := s.domains.ListDomainNames(ctx)
	if err != nil {
		r.logFailure("unable to obtain list of search domains", newError(StageListDomains, err))
		return r.report
	}
	r.report.DomainsFound = len(names)

	for _, name := range names {
		r.checkDomain(ctx, name)
	}
	return r.report
}

// run carries everything resolved lazily during a single Check call. It is
// discarded when the call returns.
type run struct {
	svc    *CheckService
	log    *slog.Logger
	report Report

	notifierLoaded bool
	notifier       Notifier

	accountLoaded bool
	account       domain.AccountContext
}

func (r *run) checkDomain(ctx context.Context, name string) {
	r.log.Info("search domain found, checking for updates", "domain", name)

	d, err := r.svc.inspector.DescribeDomain(ctx, name)
	if err != nil {
		r.report.InspectionFailures++
		r.logFailure("unable to describe domain", newError(StageDescribeDomain, err), "domain", name)
		return
	}
	if !d.UpdateAvailable {
		r.report.UpToDate++
		r.log.Info("no update available for domain", "domain", name, "current_version", d.CurrentVersion)
		return
	}

	r.report.UpdatesAvailable++
	r.log.Info("update is available for domain",
		"domain", name,
		"current_version", d.CurrentVersion,
		"new_version", d.NewVersion,
	)

	notifier := r.resolveNotifier(ctx)
	if notifier == nil {
		r.report.NotificationsMissed++
		r.log.Warn("notification suppressed, no chat token for this run", "domain", name)
		return
	}

	account := r.resolveAccount(ctx)
	n := domain.Notification{
		Channel:         r.svc.cfg.Channel,
		Domain:          d,
		Account:         account,
		ConsoleURL:      domain.ConsoleURL(account.Region, d.Name),
		ReleaseNotesURL: r.svc.cfg.ReleaseNotesURL,
	}
	if err := notifier.Send(ctx, n); err != nil {
		r.report.NotificationErrors++
		r.logFailure("error posting notification", newError(StageNotify, err), "domain", name)
		return
	}
	r.report.Notified++
	r.log.Info("notification sent", "domain", name, "channel", n.Channel)
}

// resolveNotifier fetches the chat token and builds the notifier on first
// use. The outcome, including failure, holds for the rest of the run.
func (r *run) resolveNotifier(ctx context.Context) Notifier {
	if r.notifierLoaded {
		return r.notifier
	}
	r.notifierLoaded = true

	raw, err := r.svc.params.GetParameter(ctx, r.svc.cfg.TokenParameter)
	if err != nil {
		r.logFailure("unable to retrieve parameter from parameter store", newError(StageResolveToken, err))
		return nil
	}
	token, err := parseToken(raw)
	if err != nil {
		r.logFailure("unusable chat token parameter", newError(StageResolveToken, err))
		return nil
	}
	notifier, err := r.svc.newNotifier(token)
	if err != nil {
		r.logFailure("unable to create notifier", newError(StageResolveToken, err))
		return nil
	}
	r.notifier = notifier
	return r.notifier
}

// resolveAccount looks the account alias up once per run. A failed lookup
// leaves the alias empty.
func (r *run) resolveAccount(ctx context.Context) domain.AccountContext {
	if r.accountLoaded {
		return r.account
	}
	r.accountLoaded = true
	r.account = domain.AccountContext{Region: r.svc.cfg.Region}

	alias, err := r.svc.accounts.Alias(ctx)
	if err != nil {
		r.logFailure("unable to get current aws account alias", newError(StageResolveAlias, err))
		return r.account
	}
	r.account.Alias = alias
	return r.account
}

func (r *run) logFailure(msg string, e *Error, attrs ...any) {
	attrs = append(attrs, "stage", string(e.Stage), "code", e.Code, "err", e.Err)
	r.log.Error(msg, attrs...)
}

func parseToken(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var tp tokenPayload
		if err := json.Unmarshal([]byte(raw), &tp); err != nil {
			return "", fmt.Errorf("usecase: unmarshal token parameter as JSON: %w", err)
		}
		raw = strings.TrimSpace(tp.Token)
	}
	if raw == "" {
		return "", errors.New("usecase: chat token is empty")
	}
	return raw, nil
}

var newUUID = func() string {
	return uuid.NewString()
}
