package payslip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	paysliperrors "github.com/sahithdaddla/latish13-Payslip-Module/internal/payslip/errors"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/connection"
	"github.com/sahithdaddla/latish13-Payslip-Module/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	PayslipSummariesKey        = "payslips:summaries"
	PayslipSummariesVersionKey = PayslipSummariesKey + ":ver"
	summariesCacheTTL          = 10 * time.Minute
)

type Service interface {
	Create(ctx context.Context, req CreatePayslipRequest) (CreatePayslipResponse, error)
	GetByIdentity(ctx context.Context, employeeID, month, year string) (PayslipDetailResponse, error)
	GetByID(ctx context.Context, id string) (PayslipResponse, error)
	List(ctx context.Context) ([]PayslipSummaryResponse, error)
	Delete(ctx context.Context, id string) error
	RenderPDF(ctx context.Context, id string) ([]byte, string, error)
	Health(ctx context.Context) error
}

type Option func(*service)

// WithLogger sets the base logger; request-scoped loggers on the context win.
func WithLogger(logger *zap.Logger) Option {
	return func(s *service) {
		if logger != nil {
			s.logger = logger.Named("payslip.service")
		}
	}
}

// WithClock replaces time.Now, used for createdAt and the joining date bound.
func WithClock(now func() time.Time) Option {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPoolBrokenHandler is called when storage reports the connection pool
// itself as closed. The api binary terminates the process from it.
func WithPoolBrokenHandler(fn func(error)) Option {
	return func(s *service) {
		s.onPoolBroken = fn
	}
}

type service struct {
	repo         Repository
	rdb          *redis.Client
	sf           *singleflight.Group
	logger       *zap.Logger
	now          func() time.Time
	onPoolBroken func(error)
}

// NewService builds the payslip service. rdb may be nil, which disables the
// summaries cache.
func NewService(repo Repository, rdb *redis.Client, opts ...Option) Service {
	s := &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("payslip.service"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// log prefers the request logger, which already carries request_id.
func (s *service) log(ctx context.Context) *zap.Logger {
	if l, ok := contextutil.LoggerFromContext(ctx); ok {
		return l
	}
	return s.logger.With(zap.String("request_id", contextutil.GetRequestID(ctx)))
}

func (s *service) Create(ctx context.Context, req CreatePayslipRequest) (CreatePayslipResponse, error) {
	log := s.log(ctx)
	log.Debug("create payslip requested",
		zap.String("employee_id", req.EmployeeID),
		zap.String("month_year", req.MonthYear),
	)

	payslip, err := buildPayslip(req, s.now())
	if err != nil {
		log.Warn("create payslip validation failed", zap.Error(err))
		return CreatePayslipResponse{}, err
	}

	exists, err := s.repo.ExistsByIdentity(ctx, payslip.EmployeeID, payslip.MonthYear)
	if err != nil {
		return CreatePayslipResponse{}, s.storageFailure(ctx, "create payslip duplicate check failed", err)
	}
	if exists {
		log.Warn("create payslip duplicate",
			zap.String("employee_id", payslip.EmployeeID),
			zap.String("month_year", payslip.MonthYear),
		)
		return CreatePayslipResponse{}, paysliperrors.ErrDuplicatePayslip
	}

	payslip.CreatedAt = s.now().UTC()
	if err := s.repo.Create(ctx, payslip); err != nil {
		mapped := mapRepositoryError(err)
		if errors.Is(mapped, paysliperrors.ErrDuplicatePayslip) {
			// A concurrent create won between the pre-check and the insert.
			log.Warn("create payslip lost race on unique index",
				zap.String("employee_id", payslip.EmployeeID),
				zap.String("month_year", payslip.MonthYear),
			)
			return CreatePayslipResponse{}, mapped
		}
		return CreatePayslipResponse{}, s.storageFailure(ctx, "create payslip persist failed", err)
	}

	s.invalidateSummaries(ctx)

	log.Info("create payslip success",
		zap.Uint("payslip_id", payslip.ID),
		zap.String("employee_id", payslip.EmployeeID),
		zap.String("month_year", payslip.MonthYear),
	)
	return CreatePayslipResponse{ID: payslip.ID, Message: "Payslip created successfully"}, nil
}

func (s *service) GetByIdentity(ctx context.Context, employeeID, month, year string) (PayslipDetailResponse, error) {
	employeeID = strings.TrimSpace(employeeID)
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)

	if employeeID == "" || month == "" || year == "" {
		return PayslipDetailResponse{}, paysliperrors.ErrMissingIdentity
	}
	if !ValidEmployeeID(employeeID) {
		return PayslipDetailResponse{}, paysliperrors.ErrInvalidEmployeeID
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return PayslipDetailResponse{}, paysliperrors.ErrInvalidPeriod
	}
	y, err := strconv.Atoi(year)
	if err != nil || y < 1000 || y > 9999 {
		return PayslipDetailResponse{}, paysliperrors.ErrInvalidPeriod
	}
	monthYear := PeriodKey(y, m)

	s.log(ctx).Debug("get payslip by identity requested",
		zap.String("employee_id", employeeID),
		zap.String("month_year", monthYear),
	)

	payslip, err := s.repo.FindByIdentity(ctx, employeeID, monthYear)
	if err != nil {
		return PayslipDetailResponse{}, s.lookupFailure(ctx, "get payslip by identity failed", err)
	}

	return mapToDetailResponse(*payslip), nil
}

func (s *service) GetByID(ctx context.Context, id string) (PayslipResponse, error) {
	payslipID, err := parsePayslipID(id)
	if err != nil {
		return PayslipResponse{}, err
	}

	payslip, err := s.repo.FindByID(ctx, payslipID)
	if err != nil {
		return PayslipResponse{}, s.lookupFailure(ctx, "get payslip by id failed", err)
	}

	return mapToResponse(*payslip), nil
}

func (s *service) List(ctx context.Context) ([]PayslipSummaryResponse, error) {
	cacheKey, cacheable := s.summariesKey(ctx)
	if cacheable {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []PayslipSummaryResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	flightKey := cacheKey
	if !cacheable {
		flightKey = PayslipSummariesKey
	}
	v, err, _ := s.sf.Do(flightKey, func() (interface{}, error) {
		summaries, err := s.repo.FindAllSummaries(ctx)
		if err != nil {
			return nil, s.storageFailure(ctx, "list payslips failed", err)
		}

		resp := mapToSummaryResponses(summaries)
		if cacheable {
			// A write that landed meanwhile bumped the version, so this entry
			// is stored under a key no later reader will ask for.
			if payload, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, payload, summariesCacheTTL).Err(); err != nil {
					s.log(ctx).Warn("cache payslip summaries failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]PayslipSummaryResponse), nil
}

// summariesKey resolves the cache key for the current summaries version. It
// reports false when there is no cache or the version cannot be read.
func (s *service) summariesKey(ctx context.Context) (string, bool) {
	if s.rdb == nil {
		return "", false
	}

	version, err := s.rdb.Get(ctx, PayslipSummariesVersionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		s.log(ctx).Warn("read payslip summaries version failed", zap.Error(err))
		return "", false
	}
	return SummariesCacheKey(version), true
}

// SummariesCacheKey is the cache entry holding the summaries list at version.
func SummariesCacheKey(version int64) string {
	return fmt.Sprintf("%s:v%d", PayslipSummariesKey, version)
}

func (s *service) Delete(ctx context.Context, id string) error {
	payslipID, err := parsePayslipID(id)
	if err != nil {
		return err
	}

	affected, err := s.repo.DeleteByID(ctx, payslipID)
	if err != nil {
		return s.storageFailure(ctx, "delete payslip failed", err)
	}
	if affected == 0 {
		return paysliperrors.ErrPayslipNotFound
	}

	s.invalidateSummaries(ctx)
	s.log(ctx).Info("delete payslip success", zap.Uint("payslip_id", payslipID))
	return nil
}

func (s *service) RenderPDF(ctx context.Context, id string) ([]byte, string, error) {
	payslipID, err := parsePayslipID(id)
	if err != nil {
		return nil, "", err
	}

	payslip, err := s.repo.FindByID(ctx, payslipID)
	if err != nil {
		return nil, "", s.lookupFailure(ctx, "render payslip pdf failed", err)
	}

	doc, err := renderPayslipPDF(mapToDetailResponse(*payslip))
	if err != nil {
		return nil, "", s.storageFailure(ctx, "render payslip pdf failed", err)
	}

	filename := fmt.Sprintf("payslip-%s-%s.pdf", payslip.EmployeeID, payslip.MonthYear)
	return doc, filename, nil
}

func (s *service) Health(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return s.storageFailure(ctx, "storage ping failed", err)
	}
	return nil
}

// lookupFailure passes not-found through quietly and treats anything else as
// a storage failure.
func (s *service) lookupFailure(ctx context.Context, msg string, err error) error {
	mapped := mapRepositoryError(err)
	if errors.Is(mapped, paysliperrors.ErrPayslipNotFound) {
		return mapped
	}
	return s.storageFailure(ctx, msg, err)
}

// storageFailure logs the full cause server-side and returns the mapped,
// client-safe error. A closed pool is escalated to onPoolBroken.
func (s *service) storageFailure(ctx context.Context, msg string, err error) error {
	mapped := mapRepositoryError(err)
	log := s.log(ctx)

	if errors.Is(mapped, paysliperrors.ErrConstraintViolation) {
		log.Error(msg+": storage rejected validated payslip", zap.Error(err))
	} else {
		log.Error(msg, zap.Error(err))
	}

	if connection.IsPoolClosed(err) && s.onPoolBroken != nil {
		s.onPoolBroken(err)
	}
	return mapped
}

func (s *service) invalidateSummaries(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Incr(ctx, PayslipSummariesVersionKey).Err(); err != nil {
		s.log(ctx).Error("failed to invalidate payslip summaries cache",
			zap.String("key", PayslipSummariesVersionKey),
			zap.Error(err),
		)
	}
}

func parsePayslipID(id string) (uint, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(id), 10, 64)
	if err != nil || n == 0 {
		return 0, paysliperrors.ErrInvalidPayslipID
	}
	return uint(n), nil
}

func mapToResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:              p.ID,
		EmployeeID:      p.EmployeeID,
		EmployeeName:    p.EmployeeName,
		Designation:     p.Designation,
		DateJoining:     p.DateJoining.Format(dateLayout),
		MonthYear:       p.MonthYear,
		EmployeeType:    p.EmployeeType,
		Location:        p.Location,
		BankName:        p.BankName,
		AccountNo:       p.AccountNo,
		WorkingDays:     p.WorkingDays,
		LOP:             p.LOP,
		PAN:             p.PAN,
		Earnings:        nonNilItems(p.Earnings.Data()),
		Deductions:      nonNilItems(p.Deductions.Data()),
		GrossPay:        p.GrossPay,
		TotalDeductions: p.TotalDeductions,
		NetPay:          p.NetPay,
		ProvidentFund:   p.ProvidentFund,
		UAN:             p.UAN,
		ESIC:            p.ESIC,
		CreatedAt:       p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToDetailResponse(p Payslip) PayslipDetailResponse {
	return PayslipDetailResponse{
		PayslipResponse: mapToResponse(p),
		PeriodLabel:     FormatPeriodLabel(p.MonthYear),
		DaysInPeriod:    DaysInPeriod(p.MonthYear),
		LOPDeduction:    LOPDeduction(p.GrossPay.InexactFloat64(), float64(p.WorkingDays), float64(p.LOP)),
	}
}

func mapToSummaryResponses(summaries []PayslipSummary) []PayslipSummaryResponse {
	resp := make([]PayslipSummaryResponse, len(summaries))
	for i, s := range summaries {
		resp[i] = PayslipSummaryResponse{
			ID:           s.ID,
			EmployeeID:   s.EmployeeID,
			EmployeeName: s.EmployeeName,
			MonthYear:    s.MonthYear,
			NetPay:       s.NetPay,
			CreatedAt:    s.CreatedAt.UTC().Format(time.RFC3339),
		}
	}
	return resp
}

func nonNilItems(items []LineItem) []LineItem {
	if items == nil {
		return []LineItem{}
	}
	return items
}
