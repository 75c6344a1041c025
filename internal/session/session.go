package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lilpaoo/jimbo/internal/auth"
	"github.com/lilpaoo/jimbo/internal/models"
	"github.com/lilpaoo/jimbo/internal/services"
	"github.com/lilpaoo/jimbo/internal/shared"
	"github.com/lilpaoo/jimbo/internal/workbook"
)

// DocumentName is the fixed name of the user's cloud data spreadsheet.
const DocumentName = "AI_Trainer_Data"

// TesterEmail is the placeholder identity for local-mode sessions.
const TesterEmail = "tester@jimbo.ai"

// Mode selects which backing store a session persists to.
type Mode int

const (
	ModeNone Mode = iota
	ModeCloud
	ModeLocal
)

func (m Mode) String() string {
	switch m {
	case ModeCloud:
		return "cloud"
	case ModeLocal:
		return "local"
	default:
		return "none"
	}
}

// Phase is the login state of the session.
type Phase int

const (
	LoggedOut Phase = iota
	Authenticating
	LoggedIn
)

func (p Phase) String() string {
	switch p {
	case Authenticating:
		return "authenticating"
	case LoggedIn:
		return "logged_in"
	default:
		return "logged_out"
	}
}

// PlanKind distinguishes the two plan types for chat and save routing.
type PlanKind int

const (
	KindWorkout PlanKind = iota
	KindNutrition
)

// AppState is the session's in-memory state. Every mutation replaces
// the affected entity wholesale, so the rest of the program never sees
// a partially written plan.
type AppState struct {
	Phase         Phase
	Mode          Mode
	UserEmail     string
	Authorized    bool
	Plan          *models.WorkoutPlan
	Nutrition     *models.NutritionPlan
	CheckIns      []models.CheckIn
	WorkoutChat   []models.ChatTurn
	NutritionChat []models.ChatTurn
	DocumentID    string
}

// Backend is the slice of the backend client the controller uses.
type Backend interface {
	GenerateWorkout(ctx context.Context, req models.WorkoutRequest) (*models.WorkoutPlan, error)
	GenerateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionPlan, error)
	EvaluatePlan(ctx context.Context, plan *models.WorkoutPlan, checkIns []models.CheckIn) (*models.Evaluation, error)
	ChatWithPlan(ctx context.Context, contextPlan any, history []models.ChatTurn, message string) (string, error)
}

// CloudStore is the cell-range surface of the cloud adapter.
type CloudStore interface {
	FindDocument(ctx context.Context, name string) (string, error)
	CreateDocument(ctx context.Context, name string, sheetNames []string) (string, error)
	BatchRead(ctx context.Context, documentID string, ranges []string) ([][][]any, error)
	BatchWrite(ctx context.Context, documentID string, writes []services.RangeWrite) error
	ClearRange(ctx context.Context, documentID, rng string) error
	AppendRow(ctx context.Context, documentID, rng string, row []any) error
}

// LocalStore reads and writes the local spreadsheet file.
type LocalStore interface {
	Export(snap workbook.Snapshot, path string) error
	Import(path string) (*workbook.ImportResult, error)
}

// FileStore is the default LocalStore over the workbook package.
type FileStore struct{}

func (FileStore) Export(snap workbook.Snapshot, path string) error {
	return workbook.ExportFile(snap, path)
}

func (FileStore) Import(path string) (*workbook.ImportResult, error) {
	return workbook.ImportFile(path)
}

// LoadSummary reports what a load or import found.
type LoadSummary struct {
	PlansLoaded    int
	CheckInsLoaded int
}

// Controller owns the session state machine and routes every
// persistence operation to the cloud adapter, the local file adapter,
// or in-memory state based on the login mode.
//
// The controller assumes at most one in-flight save per plan kind;
// callers serialize user actions by disabling their trigger until the
// action completes.
type Controller struct {
	backend      Backend
	cloud        CloudStore
	granter      auth.Granter
	local        LocalStore
	logger       *log.Logger
	documentName string
	filePath     string
	state        AppState
}

// Options configures a Controller.
type Options struct {
	Backend      Backend
	Cloud        CloudStore
	Granter      auth.Granter
	Local        LocalStore
	Logger       *log.Logger
	DocumentName string
	FilePath     string
}

// NewController creates a Controller in the LoggedOut state.
func NewController(opts Options) *Controller {
	if opts.Local == nil {
		opts.Local = FileStore{}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.DocumentName == "" {
		opts.DocumentName = DocumentName
	}
	if opts.FilePath == "" {
		opts.FilePath = "Jimbo_Data.xlsx"
	}

	return &Controller{
		backend:      opts.Backend,
		cloud:        opts.Cloud,
		granter:      opts.Granter,
		local:        opts.Local,
		logger:       opts.Logger,
		documentName: opts.DocumentName,
		filePath:     opts.FilePath,
	}
}

// State returns a copy of the current session state.
func (s *Controller) State() AppState {
	return s.state
}

// SignInWithIdentity starts a cloud session from a decoded identity.
// The identity must carry an email; without one the session stays
// logged out and no credential grant is attempted. The first grant is
// always requested with explicit consent.
func (s *Controller) SignInWithIdentity(ctx context.Context, claims map[string]any) error {
	if s.state.Phase == LoggedIn {
		return shared.ErrAlreadyLoggedIn
	}

	email, err := auth.Email(claims)
	if err != nil {
		return err
	}

	s.state.Phase = Authenticating
	if err := s.granter.Grant(ctx, auth.GrantConsent); err != nil {
		s.state = AppState{}
		return err
	}

	s.state = AppState{
		Phase:      LoggedIn,
		Mode:       ModeCloud,
		UserEmail:  email,
		Authorized: true,
	}
	s.logger.Info("signed in", "mode", ModeCloud, "email", email)
	return nil
}

// SignInAsTester starts a local session under a fixed placeholder
// identity. No external credential round-trip happens.
func (s *Controller) SignInAsTester() error {
	if s.state.Phase == LoggedIn {
		return shared.ErrAlreadyLoggedIn
	}

	s.state = AppState{
		Phase:     LoggedIn,
		Mode:      ModeLocal,
		UserEmail: TesterEmail,
	}
	s.logger.Info("signed in", "mode", ModeLocal, "email", TesterEmail)
	return nil
}

// SignOut clears all in-memory plan, check-in and chat state along
// with the cached document handle.
func (s *Controller) SignOut() {
	s.state = AppState{}
	s.logger.Info("signed out")
}

func (s *Controller) requireLogin() error {
	if s.state.Phase != LoggedIn {
		return shared.ErrNotLoggedIn
	}
	return nil
}

// ensureCredential acquires the cloud access credential. Reuse is
// silent only after an uninterrupted successful grant this session;
// a first-time or previously-failed grant re-prompts for explicit
// consent.
func (s *Controller) ensureCredential(ctx context.Context) error {
	mode := auth.GrantConsent
	if s.state.Authorized {
		mode = auth.GrantSilent
	}

	if err := s.granter.Grant(ctx, mode); err != nil {
		s.state.Authorized = false
		return err
	}
	s.state.Authorized = true
	return nil
}

// ensureDocument resolves the document handle lazily, searching by the
// fixed name and creating on miss, then caches the id for the rest of
// the session.
func (s *Controller) ensureDocument(ctx context.Context) (string, error) {
	if s.state.DocumentID != "" {
		return s.state.DocumentID, nil
	}

	id, err := s.cloud.FindDocument(ctx, s.documentName)
	if err != nil {
		return "", err
	}

	if id == "" {
		id, err = s.cloud.CreateDocument(ctx, s.documentName, workbook.DataSheets)
		if err != nil {
			return "", err
		}
		header := services.RangeWrite{
			Range:  workbook.SheetCheckIns + "!A1:C1",
			Values: [][]any{{workbook.CheckInHeader[0], workbook.CheckInHeader[1], workbook.CheckInHeader[2]}},
		}
		if err := s.cloud.BatchWrite(ctx, id, []services.RangeWrite{header}); err != nil {
			return "", err
		}
	}

	s.state.DocumentID = id
	return id, nil
}

// GenerateWorkout replaces the current workout plan with a freshly
// generated one and resets its chat thread. On failure the current
// plan is left untouched.
func (s *Controller) GenerateWorkout(ctx context.Context, req models.WorkoutRequest) (*models.WorkoutPlan, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.backend.GenerateWorkout(ctx, req)
	if err != nil {
		return nil, err
	}

	s.state.Plan = plan
	s.state.WorkoutChat = nil
	return plan, nil
}

// GenerateNutrition replaces the current nutrition plan and resets its
// chat thread. On failure the current plan is left untouched.
func (s *Controller) GenerateNutrition(ctx context.Context, req models.NutritionRequest) (*models.NutritionPlan, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	plan, err := s.backend.GenerateNutrition(ctx, req)
	if err != nil {
		return nil, err
	}

	s.state.Nutrition = plan
	s.state.NutritionChat = nil
	return plan, nil
}

// SavePlan persists the current workout plan: cloud mode writes the
// machine blob plus the friendly rendering to the spreadsheet, local
// mode exports the whole workbook to the data file.
func (s *Controller) SavePlan(ctx context.Context) error {
	if err := s.requireLogin(); err != nil {
		return err
	}

	switch s.state.Mode {
	case ModeLocal:
		return s.exportLocal()
	case ModeCloud:
		if s.state.Plan == nil {
			return shared.ErrNoPlan
		}
		return s.saveCloudPlan(ctx, KindWorkout)
	default:
		return shared.ErrNotLoggedIn
	}
}

// SaveNutritionPlan persists the current nutrition plan, routed the
// same way as SavePlan.
func (s *Controller) SaveNutritionPlan(ctx context.Context) error {
	if err := s.requireLogin(); err != nil {
		return err
	}

	switch s.state.Mode {
	case ModeLocal:
		return s.exportLocal()
	case ModeCloud:
		if s.state.Nutrition == nil {
			return shared.ErrNoNutritionPlan
		}
		return s.saveCloudPlan(ctx, KindNutrition)
	default:
		return shared.ErrNotLoggedIn
	}
}

func (s *Controller) exportLocal() error {
	if s.state.Plan == nil && s.state.Nutrition == nil {
		return shared.ErrNothingToSave
	}
	snap := workbook.Snapshot{
		Plan:      s.state.Plan,
		Nutrition: s.state.Nutrition,
		CheckIns:  s.state.CheckIns,
	}
	if err := s.local.Export(snap, s.filePath); err != nil {
		return err
	}
	s.logger.Info("exported data file", "path", s.filePath)
	return nil
}

func (s *Controller) saveCloudPlan(ctx context.Context, kind PlanKind) error {
	if err := s.ensureCredential(ctx); err != nil {
		return err
	}
	id, err := s.ensureDocument(ctx)
	if err != nil {
		return err
	}

	var (
		blobSheet     string
		friendlySheet string
		payload       any
		friendlyRows  [][]any
	)
	switch kind {
	case KindNutrition:
		blobSheet, friendlySheet = workbook.SheetNutritionData, workbook.SheetNutritionPlan
		payload = s.state.Nutrition
		friendlyRows = workbook.FriendlyNutritionRows(s.state.Nutrition)
	default:
		blobSheet, friendlySheet = workbook.SheetPlanData, workbook.SheetWorkoutPlan
		payload = s.state.Plan
		friendlyRows = workbook.FriendlyPlanRows(s.state.Plan)
	}

	blob, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}

	// Clear the friendly sheet so a shorter plan does not leave stale
	// rows behind; the machine blob overwrites a single cell.
	if err := s.cloud.ClearRange(ctx, id, friendlySheet); err != nil {
		return err
	}

	writes := []services.RangeWrite{
		{Range: blobSheet + "!A1", Values: [][]any{{string(blob)}}},
		{Range: friendlySheet + "!A1", Values: friendlyRows},
	}
	if err := s.cloud.BatchWrite(ctx, id, writes); err != nil {
		return err
	}

	s.logger.Info("saved plan", "sheet", blobSheet, "document", id)
	return nil
}

// AddCheckIn appends a progress entry. Cloud mode appends a sheet row
// first; local mode appends to memory only, persisted on the next
// explicit export. The in-memory list stays newest-first.
func (s *Controller) AddCheckIn(ctx context.Context, c models.CheckIn) error {
	if err := s.requireLogin(); err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return err
	}

	if s.state.Mode == ModeCloud {
		if err := s.ensureCredential(ctx); err != nil {
			return err
		}
		id, err := s.ensureDocument(ctx)
		if err != nil {
			return err
		}
		rng := workbook.SheetCheckIns + "!A:C"
		if err := s.cloud.AppendRow(ctx, id, rng, []any{c.Date, c.WeightKg, c.Notes}); err != nil {
			return err
		}
	}

	s.state.CheckIns = append([]models.CheckIn{c}, s.state.CheckIns...)
	return nil
}

// LoadAll loads persisted state for the session. Cloud mode reads the
// spreadsheet when one exists (it is never created on load); local
// mode imports the data file. Loaded sections replace in-memory state
// wholesale; sections missing from storage leave state untouched.
func (s *Controller) LoadAll(ctx context.Context) (*LoadSummary, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}

	if s.state.Mode == ModeLocal {
		return s.importLocal()
	}
	return s.loadCloud(ctx)
}

func (s *Controller) importLocal() (*LoadSummary, error) {
	result, err := s.local.Import(s.filePath)
	if err != nil {
		return nil, err
	}

	if result.Snapshot.Plan != nil {
		s.state.Plan = result.Snapshot.Plan
		s.state.WorkoutChat = nil
	}
	if result.Snapshot.Nutrition != nil {
		s.state.Nutrition = result.Snapshot.Nutrition
		s.state.NutritionChat = nil
	}
	if result.CheckInsLoaded > 0 {
		s.state.CheckIns = result.Snapshot.CheckIns
	}

	return &LoadSummary{PlansLoaded: result.PlansLoaded, CheckInsLoaded: result.CheckInsLoaded}, nil
}

func (s *Controller) loadCloud(ctx context.Context) (*LoadSummary, error) {
	if err := s.ensureCredential(ctx); err != nil {
		return nil, err
	}

	id, err := s.cloud.FindDocument(ctx, s.documentName)
	if err != nil {
		return nil, err
	}
	if id == "" {
		// Nothing saved yet; the document is created by the first save.
		return &LoadSummary{}, nil
	}
	s.state.DocumentID = id

	ranges := []string{
		workbook.SheetPlanData + "!A1",
		workbook.SheetCheckIns + "!A:Z",
		workbook.SheetNutritionData + "!A1",
	}
	values, err := s.cloud.BatchRead(ctx, id, ranges)
	if err != nil {
		return nil, err
	}

	summary := &LoadSummary{}

	if blob := firstCell(values, 0); blob != "" {
		var plan models.WorkoutPlan
		if err := json.Unmarshal([]byte(blob), &plan); err != nil {
			return nil, fmt.Errorf("malformed plan blob in document: %w", err)
		}
		s.state.Plan = &plan
		s.state.WorkoutChat = nil
		summary.PlansLoaded++
	}

	if len(values) > 1 && len(values[1]) > 1 {
		rows := values[1][1:] // skip header
		checkIns := make([]models.CheckIn, 0, len(rows))
		for _, row := range rows {
			checkIns = append(checkIns, models.CheckIn{
				Date:     anyString(row, 0),
				WeightKg: anyString(row, 1),
				Notes:    anyString(row, 2),
			})
		}
		// Stored oldest-first; display wants newest-first.
		for i, j := 0, len(checkIns)-1; i < j; i, j = i+1, j-1 {
			checkIns[i], checkIns[j] = checkIns[j], checkIns[i]
		}
		s.state.CheckIns = checkIns
		summary.CheckInsLoaded = len(checkIns)
	}

	if blob := firstCell(values, 2); blob != "" {
		var plan models.NutritionPlan
		if err := json.Unmarshal([]byte(blob), &plan); err != nil {
			return nil, fmt.Errorf("malformed nutrition blob in document: %w", err)
		}
		s.state.Nutrition = &plan
		s.state.NutritionChat = nil
		summary.PlansLoaded++
	}

	return summary, nil
}

// Chat sends one message in the thread attached to the given plan
// kind. The user turn is recorded before the call; the assistant turn
// only on success.
func (s *Controller) Chat(ctx context.Context, kind PlanKind, message string) (string, error) {
	if err := s.requireLogin(); err != nil {
		return "", err
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: message", shared.ErrMissingArgument)
	}

	var contextPlan any
	var history *[]models.ChatTurn
	switch kind {
	case KindNutrition:
		if s.state.Nutrition == nil {
			return "", shared.ErrNoNutritionPlan
		}
		contextPlan = s.state.Nutrition
		history = &s.state.NutritionChat
	default:
		if s.state.Plan == nil {
			return "", shared.ErrNoPlan
		}
		contextPlan = s.state.Plan
		history = &s.state.WorkoutChat
	}

	*history = append(*history, models.ChatTurn{Role: models.RoleUser, Content: message})

	reply, err := s.backend.ChatWithPlan(ctx, contextPlan, *history, message)
	if err != nil {
		return "", err
	}

	*history = append(*history, models.ChatTurn{Role: models.RoleAI, Content: reply})
	return reply, nil
}

// Evaluate submits the current plan and check-ins for a progress
// evaluation. Both must be present.
func (s *Controller) Evaluate(ctx context.Context) (*models.Evaluation, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}
	if s.state.Plan == nil || len(s.state.CheckIns) == 0 {
		return nil, shared.ErrNoEvaluationData
	}

	return s.backend.EvaluatePlan(ctx, s.state.Plan, s.state.CheckIns)
}

// firstCell returns the top-left cell of the i-th value range as a string.
func firstCell(values [][][]any, i int) string {
	if i >= len(values) || len(values[i]) == 0 || len(values[i][0]) == 0 {
		return ""
	}
	return anyString(values[i][0], 0)
}

// anyString reads row[i] as a string, tolerating short rows and
// non-string cells.
func anyString(row []any, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	if str, ok := row[i].(string); ok {
		return str
	}
	return fmt.Sprintf("%v", row[i])
}
