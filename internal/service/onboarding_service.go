package service

import (
	"context"
	"onboarding_backend/internal/model"
	"onboarding_backend/internal/repository"
	"onboarding_backend/internal/util"
	"onboarding_backend/pkg/logger"
	"onboarding_backend/pkg/messaging"
	"onboarding_backend/pkg/monitoring"
	"onboarding_backend/pkg/tracing"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

const StepCount = 5

// OnboardingStep 步骤条：1-4 为视频，5 为测验/承诺书
type OnboardingStep struct {
	Step      int    `json:"step"`
	Label     string `json:"label"`
	Active    bool   `json:"active"`
	Completed bool   `json:"completed"`
	Unlocked  bool   `json:"unlocked"`
}

type OnboardingState struct {
	Phase       model.OnboardingPhase  `json:"phase,omitempty"`
	ActiveVideo int                    `json:"activeVideo,omitempty"`
	Progress    OnboardingProgressView `json:"progress"`
	Videos      []VideoGateStatus      `json:"videos,omitempty"`
	Steps       []OnboardingStep       `json:"steps,omitempty"`
	Quiz        *QuizView              `json:"quiz,omitempty"`
	Commitment  *CommitmentView        `json:"commitment,omitempty"`
	Completed   bool                   `json:"completed"`
	Redirect    string                 `json:"redirect,omitempty"`

	// 已签署时返回当前申请状态
	ApplicationStatus model.ApplicationStatus `json:"applicationStatus,omitempty"`
}

type OnboardingService struct {
	UserRepo      *repository.UserRepository
	ApplicantRepo *repository.ApplicantRepository
	SessionRepo   *repository.SessionRepository
	Videos        *VideoService
	Quiz          *QuizEngine
	Storage       *StorageService
	Events        messaging.Publisher
	WaitingPath   string
	Now           func() time.Time
}

func NewOnboardingService(
	userRepo *repository.UserRepository,
	applicantRepo *repository.ApplicantRepository,
	sessionRepo *repository.SessionRepository,
	videos *VideoService,
	quiz *QuizEngine,
	storage *StorageService,
	events messaging.Publisher,
	waitingPath string,
) *OnboardingService {
	if events == nil {
		events = messaging.NopPublisher{}
	}
	return &OnboardingService{
		UserRepo:      userRepo,
		ApplicantRepo: applicantRepo,
		SessionRepo:   sessionRepo,
		Videos:        videos,
		Quiz:          quiz,
		Storage:       storage,
		Events:        events,
		WaitingPath:   waitingPath,
		Now:           time.Now,
	}
}

// Start 按已保存的记录决定起始阶段并创建新会话：
// 已通过测验且未签署 -> commitment；做过测验 -> quiz；否则 -> videos
func (s *OnboardingService) Start(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	if applicant.HasSigned() {
		return s.completedState(ctx, applicant), nil
	}

	session, err := s.newSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Save(ctx, session); err != nil {
		logger.Log.Error("Failed to save onboarding session", zap.Uint("applicantId", applicant.ID), zap.Error(err))
		return nil, err
	}

	logger.Log.Info("Onboarding session started",
		zap.Uint("applicantId", applicant.ID),
		zap.String("phase", string(session.Phase)),
		zap.Int("activeVideo", session.ActiveVideo),
	)
	return s.buildState(ctx, session)
}

func (s *OnboardingService) newSession(ctx context.Context, applicant *model.Applicant) (*model.OnboardingSession, error) {
	view, err := s.Videos.ProgressView(ctx, applicant.ID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	session := &model.OnboardingSession{
		ApplicantID: applicant.ID,
		Phase:       model.PhaseVideos,
		ActiveVideo: view.CurrentVideo,
		Quiz:        model.QuizDraft{Answers: map[int]int{}},
		StartedAt:   now,
	}

	switch {
	case applicant.QuizPassed && !applicant.HasSigned():
		session.Phase = model.PhaseCommitment
		restoreQuizScore(session, applicant)
	case applicant.HasCompletedQuiz():
		session.Phase = model.PhaseQuiz
	}
	return session, nil
}

func restoreQuizScore(session *model.OnboardingSession, applicant *model.Applicant) {
	session.QuizScore = applicant.QuizScore
	session.QuizTotal = applicant.QuizTotal
	session.QuizPassed = applicant.QuizPassed
}

// loadSession 会话过期或不存在时重新推导
func (s *OnboardingService) loadSession(ctx context.Context, applicant *model.Applicant) (*model.OnboardingSession, error) {
	session, err := s.SessionRepo.Get(ctx, applicant.ID)
	if err != nil {
		logger.Log.Error("Failed to load onboarding session", zap.Uint("applicantId", applicant.ID), zap.Error(err))
		return nil, err
	}
	if session != nil {
		return session, nil
	}

	session, err = s.newSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// mutate 加载会话，执行修改并保存；已签署的申请人不能再修改
func (s *OnboardingService) mutate(ctx context.Context, applicant *model.Applicant, fn func(session *model.OnboardingSession) error) (*OnboardingState, error) {
	if applicant.HasSigned() {
		return nil, util.ErrAlreadySigned
	}
	session, err := s.loadSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	if err := s.SessionRepo.Save(ctx, session); err != nil {
		logger.Log.Error("Failed to save onboarding session", zap.Uint("applicantId", applicant.ID), zap.Error(err))
		return nil, err
	}
	return s.buildState(ctx, session)
}

func requirePhase(session *model.OnboardingSession, phase model.OnboardingPhase) error {
	if session.Phase != phase {
		return util.ErrWrongPhase
	}
	return nil
}

func (s *OnboardingService) State(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	if applicant.HasSigned() {
		return s.completedState(ctx, applicant), nil
	}
	session, err := s.loadSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	return s.buildState(ctx, session)
}

// completedState 读取申请状态失败不影响跳转，只记日志
func (s *OnboardingService) completedState(ctx context.Context, applicant *model.Applicant) *OnboardingState {
	state := &OnboardingState{Completed: true, Redirect: s.WaitingPath}
	if s.UserRepo == nil {
		return state
	}
	user, err := s.UserRepo.FindByID(ctx, applicant.UserID)
	if err != nil {
		logger.Log.Warn("Failed to load application status", zap.Uint("applicantId", applicant.ID), zap.Error(err))
		return state
	}
	state.ApplicationStatus = user.ApplicationStatus
	return state
}

func (s *OnboardingService) buildState(ctx context.Context, session *model.OnboardingSession) (*OnboardingState, error) {
	overview, err := s.Videos.Overview(ctx, session.ApplicantID)
	if err != nil {
		return nil, err
	}

	state := &OnboardingState{
		Phase:       session.Phase,
		ActiveVideo: session.ActiveVideo,
		Progress:    overview.Progress,
		Videos:      overview.Videos,
		Steps:       buildSteps(session, overview.Progress),
	}
	switch session.Phase {
	case model.PhaseQuiz:
		state.Quiz = s.Quiz.View(&session.Quiz)
	case model.PhaseCommitment:
		state.Commitment = BuildCommitmentView(session)
	}
	return state, nil
}

func buildSteps(session *model.OnboardingSession, progress OnboardingProgressView) []OnboardingStep {
	steps := make([]OnboardingStep, 0, StepCount)
	for n := 1; n <= VideoCount; n++ {
		steps = append(steps, OnboardingStep{
			Step:      n,
			Label:     "Video " + strconv.Itoa(n),
			Active:    session.Phase == model.PhaseVideos && session.ActiveVideo == n,
			Completed: progress.IsCompleted(n),
			Unlocked:  progress.IsUnlocked(n),
		})
	}
	quizPassed := session.QuizPassed || (session.Quiz.Result != nil && session.Quiz.Result.Passed)
	steps = append(steps, OnboardingStep{
		Step:      StepCount,
		Label:     "Quiz & Commitment",
		Active:    session.Phase != model.PhaseVideos,
		Completed: quizPassed,
		Unlocked:  true,
	})
	return steps
}

// ReportPlayback 视频阶段的播放进度；当前视频看完后自动切到下一个
func (s *OnboardingService) ReportPlayback(ctx context.Context, applicant *model.Applicant, number int, watched, total float64) (*PlaybackResult, error) {
	if applicant.HasSigned() {
		return nil, util.ErrAlreadySigned
	}
	session, err := s.loadSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(session, model.PhaseVideos); err != nil {
		return nil, err
	}

	result, err := s.Videos.ReportPlayback(ctx, applicant.ID, number, watched, total)
	if err != nil {
		return nil, err
	}

	if result.NewlyCompleted && session.ActiveVideo == number && number < VideoCount {
		session.ActiveVideo = number + 1
		if err := s.SessionRepo.Save(ctx, session); err != nil {
			logger.Log.Error("Failed to save onboarding session", zap.Uint("applicantId", applicant.ID), zap.Error(err))
			return nil, err
		}
	}
	return result, nil
}

// ProceedToQuiz 仅当当前在视频 4 且视频 4 已看完
func (s *OnboardingService) ProceedToQuiz(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseVideos); err != nil {
			return err
		}
		if session.ActiveVideo != VideoCount {
			return util.ErrVideosIncomplete
		}
		view, err := s.Videos.ProgressView(ctx, applicant.ID)
		if err != nil {
			return err
		}
		if !view.IsCompleted(VideoCount) {
			return util.ErrVideosIncomplete
		}
		session.Phase = model.PhaseQuiz
		return nil
	})
}

// Back quiz -> videos，commitment -> quiz，草稿保持不变
func (s *OnboardingService) Back(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		switch session.Phase {
		case model.PhaseQuiz:
			session.Phase = model.PhaseVideos
		case model.PhaseCommitment:
			session.Phase = model.PhaseQuiz
		default:
			return util.ErrWrongPhase
		}
		return nil
	})
}

// JumpToStep 1-4 回到对应视频；5 在已通过测验时进入承诺书，否则进入测验
func (s *OnboardingService) JumpToStep(ctx context.Context, applicant *model.Applicant, step int) (*OnboardingState, error) {
	if step < 1 || step > StepCount {
		return nil, util.ErrInvalidStep
	}
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if step <= VideoCount {
			session.Phase = model.PhaseVideos
			session.ActiveVideo = step
			return nil
		}

		if score, total, ok := passedScore(session, applicant); ok {
			session.Phase = model.PhaseCommitment
			session.QuizScore, session.QuizTotal, session.QuizPassed = score, total, true
			return nil
		}
		session.Phase = model.PhaseQuiz
		return nil
	})
}

// passedScore 本次会话已有测验结果时以它为准，否则取会话或记录中保存的成绩
func passedScore(session *model.OnboardingSession, applicant *model.Applicant) (int, int, bool) {
	if r := session.Quiz.Result; r != nil {
		return r.Score, r.Total, r.Passed
	}
	if session.QuizPassed {
		return session.QuizScore, session.QuizTotal, true
	}
	if applicant.QuizPassed {
		return applicant.QuizScore, applicant.QuizTotal, true
	}
	return 0, 0, false
}

func (s *OnboardingService) QuizView(ctx context.Context, applicant *model.Applicant) (*QuizView, error) {
	session, err := s.loadSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	return s.Quiz.View(&session.Quiz), nil
}

func (s *OnboardingService) SelectAnswer(ctx context.Context, applicant *model.Applicant, index, option int) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseQuiz); err != nil {
			return err
		}
		return s.Quiz.Select(&session.Quiz, index, option)
	})
}

// NextQuestion 在最后一题时直接提交
func (s *OnboardingService) NextQuestion(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseQuiz); err != nil {
			return err
		}
		submit, err := s.Quiz.Next(&session.Quiz)
		if err != nil || !submit {
			return err
		}
		return s.submitQuiz(ctx, applicant, session)
	})
}

func (s *OnboardingService) PreviousQuestion(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseQuiz); err != nil {
			return err
		}
		return s.Quiz.Back(&session.Quiz)
	})
}

func (s *OnboardingService) SubmitQuiz(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseQuiz); err != nil {
			return err
		}
		return s.submitQuiz(ctx, applicant, session)
	})
}

// submitQuiz 评分并一次性保存成绩；保存失败时撤销结果，允许重新提交
func (s *OnboardingService) submitQuiz(ctx context.Context, applicant *model.Applicant, session *model.OnboardingSession) error {
	outcome, err := s.Quiz.Evaluate(&session.Quiz, s.Now())
	if err != nil {
		return err
	}

	err = s.ApplicantRepo.SaveQuizResult(ctx, applicant.ID, repository.QuizResultRecord{
		Score:       outcome.Score,
		Total:       outcome.Total,
		Passed:      outcome.Passed,
		CompletedAt: outcome.CompletedAt,
	})
	if err != nil {
		session.Quiz.Result = nil
		logger.Log.Error("Failed to save quiz result", zap.Uint("applicantId", applicant.ID), zap.Int("score", outcome.Score), zap.Error(err))
		return err
	}

	// 最新一次成绩覆盖之前带入的成绩，未通过时不能再凭旧成绩进入承诺书
	session.QuizScore, session.QuizTotal, session.QuizPassed = outcome.Score, outcome.Total, outcome.Passed
	completedAt := outcome.CompletedAt
	applicant.QuizScore, applicant.QuizTotal, applicant.QuizPassed = outcome.Score, outcome.Total, outcome.Passed
	applicant.QuizCompletedAt = &completedAt

	result := "failed"
	if outcome.Passed {
		result = "passed"
	}
	monitoring.QuizSubmissions.WithLabelValues(result).Inc()
	logger.Log.Info("Onboarding quiz submitted",
		zap.Uint("applicantId", applicant.ID),
		zap.Int("score", outcome.Score),
		zap.Int("total", outcome.Total),
		zap.Bool("passed", outcome.Passed),
	)
	publish(ctx, s.Events, messaging.Event{
		Type:        messaging.EventQuizCompleted,
		ApplicantID: applicant.ID,
		OccurredAt:  outcome.CompletedAt,
		Payload:     map[string]interface{}{"score": outcome.Score, "total": outcome.Total, "passed": outcome.Passed},
	})
	return nil
}

func (s *OnboardingService) RetakeQuiz(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseQuiz); err != nil {
			return err
		}
		return s.Quiz.Retake(&session.Quiz)
	})
}

// ContinueToCommitment 测验通过后把成绩带入承诺书阶段
func (s *OnboardingService) ContinueToCommitment(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseQuiz); err != nil {
			return err
		}
		score, total, ok := passedScore(session, applicant)
		if !ok {
			return util.ErrQuizNotPassed
		}
		session.Phase = model.PhaseCommitment
		session.QuizScore, session.QuizTotal, session.QuizPassed = score, total, true
		return nil
	})
}

func (s *OnboardingService) Commitment(ctx context.Context, applicant *model.Applicant) (*CommitmentView, error) {
	if applicant.HasSigned() {
		return nil, util.ErrAlreadySigned
	}
	session, err := s.loadSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	return BuildCommitmentView(session), nil
}

func (s *OnboardingService) UpdateCommitment(ctx context.Context, applicant *model.Applicant, update CommitmentUpdate) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseCommitment); err != nil {
			return err
		}
		ApplyCommitmentUpdate(&session.Commitment, update)
		return nil
	})
}

func (s *OnboardingService) AddSignatureStroke(ctx context.Context, applicant *model.Applicant, stroke model.SignatureStroke) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseCommitment); err != nil {
			return err
		}
		return AddStroke(&session.Commitment, stroke)
	})
}

func (s *OnboardingService) UploadSignature(ctx context.Context, applicant *model.Applicant, dataURL string) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseCommitment); err != nil {
			return err
		}
		return SetSignatureImage(&session.Commitment, dataURL)
	})
}

func (s *OnboardingService) ClearSignature(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	return s.mutate(ctx, applicant, func(session *model.OnboardingSession) error {
		if err := requirePhase(session, model.PhaseCommitment); err != nil {
			return err
		}
		ClearSignature(&session.Commitment)
		return nil
	})
}

// CompleteCommitment 在一个事务里保存承诺书并把申请状态改为 waitlist。
// 失败时不落库，会话保持在 commitment 阶段以便重试。
func (s *OnboardingService) CompleteCommitment(ctx context.Context, applicant *model.Applicant) (*OnboardingState, error) {
	ctx, span := tracing.Tracer.Start(ctx, "onboarding.CompleteCommitment")
	defer span.End()
	span.SetAttributes(attribute.Int64("applicant.id", int64(applicant.ID)))

	if applicant.HasSigned() {
		return nil, util.ErrAlreadySigned
	}
	session, err := s.loadSession(ctx, applicant)
	if err != nil {
		return nil, err
	}
	if err := requirePhase(session, model.PhaseCommitment); err != nil {
		return nil, err
	}

	signature, canDoMobile, err := CompleteCommitmentDraft(&session.Commitment)
	if err != nil {
		return nil, err
	}

	signedAt := s.Now()
	err = s.ApplicantRepo.CompleteCommitment(ctx, applicant, repository.CommitmentRecord{
		QuizScore:     session.QuizScore,
		QuizTotal:     session.QuizTotal,
		SignatureData: signature,
		CanDoMobile:   &canDoMobile,
		SignedAt:      signedAt,
	})
	if err != nil {
		monitoring.Commitments.WithLabelValues("failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "complete commitment failed")
		logger.Log.Error("Failed to complete commitment", zap.Uint("applicantId", applicant.ID), zap.Error(err))
		return nil, err
	}

	monitoring.Commitments.WithLabelValues("signed").Inc()
	logger.Log.Info("Onboarding commitment signed", zap.Uint("applicantId", applicant.ID), zap.Bool("canDoMobile", canDoMobile))

	applicant.CommitmentSignedAt = &signedAt
	applicant.CanDoMobile = &canDoMobile
	if err := s.SessionRepo.Delete(ctx, applicant.ID); err != nil {
		logger.Log.Warn("Failed to delete onboarding session", zap.Uint("applicantId", applicant.ID), zap.Error(err))
	}
	s.archiveSignature(ctx, applicant.ID, signature)

	publish(ctx, s.Events, messaging.Event{
		Type:        messaging.EventCommitmentSigned,
		ApplicantID: applicant.ID,
		OccurredAt:  signedAt,
		Payload: map[string]interface{}{
			"quizScore":   session.QuizScore,
			"quizTotal":   session.QuizTotal,
			"canDoMobile": canDoMobile,
		},
	})
	return s.completedState(ctx, applicant), nil
}

// archiveSignature 尽力而为，失败只记日志
func (s *OnboardingService) archiveSignature(ctx context.Context, applicantID uint, signature string) {
	if s.Storage == nil {
		return
	}
	raw, err := util.DecodeSignatureDataURL(signature)
	if err != nil {
		logger.Log.Warn("Signature not archivable", zap.Uint("applicantId", applicantID), zap.Error(err))
		return
	}
	key, url, err := s.Storage.ArchiveSignature(ctx, applicantID, raw)
	if err != nil {
		logger.Log.Warn("Failed to archive signature", zap.Uint("applicantId", applicantID), zap.Error(err))
		return
	}
	if err := s.ApplicantRepo.UpdateSignatureURL(ctx, applicantID, url); err != nil {
		logger.Log.Warn("Failed to save signature url", zap.Uint("applicantId", applicantID), zap.Error(err))
		// 地址没保存下来，归档文件也就找不到了
		if err := s.Storage.Provider.Delete(ctx, key); err != nil {
			logger.Log.Warn("Failed to remove orphaned signature", zap.String("url", url), zap.Error(err))
		}
	}
}
