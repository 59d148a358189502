package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net"
	"stationd/internal/providers"
	"stationd/internal/structures"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

const (
	ScoreCapital = 100
	FailureCost  = 7

	srvService = "api"
	srvProto   = "tcp"
)

type Resolver interface {
	LookupSRV(ctx context.Context, service, proto, name string) (string, []*net.SRV, error)
}

func NewResolverProvider() Resolver {
	return net.DefaultResolver
}

type ServerRegistryInterface interface {
	Initialize(ctx context.Context, explicit []string) error
	Select(ctx context.Context) string
	RecordOutcome(ctx context.Context, success bool)
	Current() string
	Score() int
	Servers() []string
	Scheme() string
}

// ServerRegistry tracks the candidate catalog hosts, the selected one and a
// degradation score. Failures cost FailureCost, successes restore one point;
// dropping below zero picks a new server and refills the score.
type ServerRegistry struct {
	mu      sync.Mutex
	hosts   []string
	current string
	score   int

	conf     *structures.Config
	logger   providers.Logger
	http     providers.HttpClientInterface
	resolver Resolver
	metrics  providers.MetricsProviderInterface
	randIntn func(n int) int
}

func NewServerRegistry(conf *structures.Config, logger providers.Logger, http providers.HttpClientInterface, resolver Resolver, metrics providers.MetricsProviderInterface) ServerRegistryInterface {
	return &ServerRegistry{
		score:    ScoreCapital,
		conf:     conf,
		logger:   logger,
		http:     http,
		resolver: resolver,
		metrics:  metrics,
		randIntn: rand.IntN,
	}
}

// Initialize uses explicit verbatim when it is non-empty. Otherwise it asks
// DNS for SRV records and, failing that, the round-robin fallback host.
func (r *ServerRegistry) Initialize(ctx context.Context, explicit []string) error {
	var hosts []string
	if len(explicit) > 0 {
		hosts = append(hosts, explicit...)
		r.logger.Infof(providers.TypeCatalog, "Using %d explicitly configured catalog servers", len(hosts))
	} else {
		hosts = r.lookupSRV(ctx)
		if len(hosts) == 0 {
			r.logger.Warnf(providers.TypeCatalog, "SRV discovery returned no servers, asking %s", r.conf.Catalog.FallbackHost)
			hosts = r.lookupFallback(ctx)
		}
	}

	if len(hosts) == 0 {
		r.logger.Errorf(providers.TypeCatalog, "Catalog server discovery failed")
		return ErrNoServers
	}

	r.mu.Lock()
	r.hosts = hosts
	r.score = ScoreCapital
	r.mu.Unlock()

	r.logger.Infof(providers.TypeCatalog, "Catalog servers: %s", strings.Join(hosts, ", "))
	return nil
}

func (r *ServerRegistry) lookupSRV(ctx context.Context) []string {
	_, records, err := r.resolver.LookupSRV(ctx, srvService, srvProto, r.conf.Catalog.SrvDomain)
	if err != nil {
		r.logger.Warnf(providers.TypeCatalog, "SRV lookup _%s._%s.%s failed: %s", srvService, srvProto, r.conf.Catalog.SrvDomain, err)
		return nil
	}
	names := make([]string, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		names = append(names, strings.TrimSuffix(rec.Target, "."))
	}
	return dedupe(names)
}

func (r *ServerRegistry) lookupFallback(ctx context.Context) []string {
	url := fmt.Sprintf("%s://%s/json/servers", r.conf.Catalog.Scheme, r.conf.Catalog.FallbackHost)
	resp, err := r.http.Get(ctx, url)
	if err != nil {
		r.logger.Warnf(providers.TypeCatalog, "Fallback discovery failed: %s", err)
		return nil
	}
	if !resp.OK() {
		r.logger.Warnf(providers.TypeCatalog, "Fallback discovery returned status %d", resp.Status)
		return nil
	}

	var raw []map[string]any
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		r.logger.Warnf(providers.TypeCatalog, "Fallback discovery returned malformed server list: %s", err)
		return nil
	}
	names := make([]string, 0, len(raw))
	for _, obj := range raw {
		names = append(names, cast.ToString(obj["name"]))
	}
	return dedupe(names)
}

// Select probes hosts round-robin from a random start and keeps the first
// live one. When nobody answers, the last probed host stays selected.
func (r *ServerRegistry) Select(ctx context.Context) string {
	r.mu.Lock()
	hosts := append([]string(nil), r.hosts...)
	r.mu.Unlock()

	if len(hosts) == 0 {
		return ""
	}

	start := r.randIntn(len(hosts))
	selected := ""
	for i := range hosts {
		host := hosts[(start+i)%len(hosts)]
		selected = host
		if r.probe(ctx, host) {
			r.logger.Infof(providers.TypeCatalog, "Selected catalog server %s", host)
			break
		}
		r.logger.Warnf(providers.TypeCatalog, "Catalog server %s did not answer the liveness probe", host)
		if ctx.Err() != nil {
			break
		}
	}

	r.mu.Lock()
	r.current = selected
	score := r.score
	r.mu.Unlock()

	r.metrics.SetServerScore(selected, score)
	return selected
}

// probe asks for the stats headers only; a 2xx answer means the host is live.
func (r *ServerRegistry) probe(ctx context.Context, host string) bool {
	resp, err := r.http.Head(ctx, fmt.Sprintf("%s://%s/json/stats", r.conf.Catalog.Scheme, host))
	if err != nil {
		return false
	}
	return resp.OK()
}

func (r *ServerRegistry) RecordOutcome(ctx context.Context, success bool) {
	r.mu.Lock()
	if success {
		r.score = min(r.score+1, ScoreCapital)
		score, host := r.score, r.current
		r.mu.Unlock()
		r.metrics.SetServerScore(host, score)
		return
	}

	r.score -= FailureCost
	reselect := r.score < 0
	if reselect {
		r.score = ScoreCapital
	}
	score, host := r.score, r.current
	r.mu.Unlock()

	if !reselect {
		r.logger.Debugf(providers.TypeCatalog, "Catalog server %s degraded, score %d", host, score)
		r.metrics.SetServerScore(host, score)
		return
	}

	r.logger.Warnf(providers.TypeCatalog, "Catalog server %s exhausted its score, selecting another one", host)
	r.metrics.IncServerReselections()
	r.Select(ctx)
}

func (r *ServerRegistry) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

func (r *ServerRegistry) Score() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.score
}

func (r *ServerRegistry) Servers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.hosts...)
}

func (r *ServerRegistry) Scheme() string {
	return r.conf.Catalog.Scheme
}

func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// IsUnavailable reports whether err came from an unreachable or broken catalog.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrNoServers)
}
