package jobs

import (
	"context"
	"errors"
	"time"

	"tidyteam/internal/domain"
	"tidyteam/internal/pkg/clock"
	"tidyteam/internal/repository"
	"tidyteam/internal/view"

	"gorm.io/gorm"
)

// mapSlotErr turns the repository's guarded-update miss into the
// module's filled-job error.
func mapSlotErr(err error) error {
	if errors.Is(err, repository.ErrNoSlot) {
		return ErrJobFilled
	}
	return err
}

// Policy carries the multi-cleaner defaults from config.
type Policy struct {
	FeePercent          float64
	OfferTTL            time.Duration
	SoloOfferTTL        time.Duration
	RecommendedCleaners int
}

type Service struct {
	jobs        JobRepository
	offers      OfferRepository
	assignments AssignmentRepository
	users       UserRepository
	notifs      NotificationSender
	clk         clock.Clock
	policy      Policy
}

func NewService(
	jobs JobRepository,
	offers OfferRepository,
	assignments AssignmentRepository,
	users UserRepository,
	notifs NotificationSender,
	clk clock.Clock,
	policy Policy,
) *Service {
	return &Service{
		jobs:        jobs,
		offers:      offers,
		assignments: assignments,
		users:       users,
		notifs:      notifs,
		clk:         clk,
		policy:      policy,
	}
}

func (s *Service) CreateJob(ctx context.Context, req CreateJobRequest) (*domain.Job, error) {
	if req.TotalCleanersRequired < 2 {
		return nil, ErrValidation
	}
	if req.TotalJobPrice <= 0 {
		return nil, ErrValidation
	}

	j := &domain.Job{
		HomeownerID:           req.HomeownerID,
		AppointmentDate:       req.AppointmentDate,
		Address:               req.Address,
		City:                  req.City,
		State:                 req.State,
		NumBeds:               req.NumBeds,
		NumBaths:              req.NumBaths,
		TotalCleanersRequired: req.TotalCleanersRequired,
		Status:                domain.JobOpen,
		TotalJobPrice:         domain.CentsFromDollars(req.TotalJobPrice),
		TimeToBeCompleted:     req.TimeToBeCompleted,
	}
	if err := s.jobs.Create(ctx, j); err != nil {
		return nil, err
	}
	return j, nil
}

func (s *Service) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	j, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

// ListOpenCards lists open jobs as the card payloads the client
// renders, scoped to the viewing cleaner's room assignments and
// pending offer, if any.
func (s *Service) ListOpenCards(ctx context.Context, viewerID int64, flags view.ViewerFlags, limit, offset int) ([]JobCardResponse, error) {
	jobsList, err := s.jobs.ListOpen(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	pending, err := s.offers.ListPendingForCleaner(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	pendingByJob := make(map[int64]*domain.Offer, len(pending))
	for i := range pending {
		pendingByJob[pending[i].JobID] = &pending[i]
	}

	if flags.IsBusinessOwner {
		has, err := s.users.HasEmployees(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		flags.HasEmployees = has
	}

	now := s.clk.Now()
	out := make([]JobCardResponse, 0, len(jobsList))
	for i := range jobsList {
		j := &jobsList[i]

		in := view.CardInput{Flags: flags}
		if o, ok := pendingByJob[j.ID]; ok {
			in.EarningsOffered = o.EarningsOffered
			in.ExpiresAt = &o.ExpiresAt
			in.Flags.IsOffer = true
		} else {
			_, _, in.PerCleanerEarnings = s.splitShare(j)
		}

		rooms, err := s.assignments.ListForCleaner(ctx, j.ID, viewerID)
		if err != nil {
			return nil, err
		}
		for _, r := range rooms {
			in.AssignedRooms = append(in.AssignedRooms, r.DisplayLabel)
		}

		out = append(out, JobCardResponse{
			Job:  toJobPayload(j),
			Card: view.BuildJobCard(j, in, now),
		})
	}
	return out, nil
}

func toJobPayload(j *domain.Job) jobPayload {
	return jobPayload{
		ID:                    j.ID,
		AppointmentDate:       j.AppointmentDate,
		Address:               j.Address,
		City:                  j.City,
		State:                 j.State,
		NumBeds:               j.NumBeds,
		NumBaths:              j.NumBaths,
		TotalCleanersRequired: j.TotalCleanersRequired,
		CleanersConfirmed:     j.CleanersConfirmed,
		Status:                string(j.Status),
		TimeToBeCompleted:     j.TimeToBeCompleted,
	}
}

// LargeHomeWarning is the entry-gate payload for a solo cleaner
// browsing an oversized job.
func (s *Service) LargeHomeWarning(ctx context.Context, jobID int64) (view.LargeHomeWarning, error) {
	j, err := s.GetJob(ctx, jobID)
	if err != nil {
		return view.LargeHomeWarning{}, err
	}
	return view.BuildLargeHomeWarning(j.NumBeds, j.NumBaths, j.TotalCleanersRequired, s.policy.RecommendedCleaners), nil
}

// splitShare is the even per-cleaner cut of the job: the gross share,
// the platform fee on it, and the take-home earnings.
func (s *Service) splitShare(j *domain.Job) (share, fee, earnings domain.Cents) {
	share = domain.Cents(int64(j.TotalJobPrice) / int64(j.TotalCleanersRequired))
	fee, earnings = domain.SplitFee(share, s.policy.FeePercent)
	return share, fee, earnings
}

// recordDirectConfirm files an already-accepted offer for a slot taken
// without a pending offer step, so the confirmed cleaner and their
// share stay on record.
func (s *Service) recordDirectConfirm(ctx context.Context, j *domain.Job, cleanerID int64) error {
	share, fee, earnings := s.splitShare(j)
	now := s.clk.Now()
	o := &domain.Offer{
		JobID:           j.ID,
		CleanerID:       cleanerID,
		Status:          domain.OfferAccepted,
		ExpiresAt:       now,
		TotalJobPrice:   share,
		PlatformFee:     fee,
		EarningsOffered: earnings,
		PercentOfWork:   100.0 / float64(j.TotalCleanersRequired),
		RespondedAt:     &now,
	}
	return s.offers.Create(ctx, o)
}

// OfferToCleaner creates a formal time-boxed offer. The fee split is
// computed once here; the modal's three breakdown rows reconstruct the
// total exactly.
func (s *Service) OfferToCleaner(ctx context.Context, jobID, cleanerID int64) (*domain.Offer, error) {
	j, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.IsFilled() || j.Status != domain.JobOpen {
		return nil, ErrJobFilled
	}

	share, fee, earnings := s.splitShare(j)

	o := &domain.Offer{
		JobID:           jobID,
		CleanerID:       cleanerID,
		Status:          domain.OfferPending,
		ExpiresAt:       s.clk.Now().Add(s.policy.OfferTTL),
		TotalJobPrice:   share,
		PlatformFee:     fee,
		EarningsOffered: earnings,
		PercentOfWork:   100.0 / float64(j.TotalCleanersRequired),
	}
	if err := s.offers.Create(ctx, o); err != nil {
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyOfferCreated(ctx, cleanerID, o.ID, jobID)
	}
	return o, nil
}

// OfferView assembles the full offer modal payload for its cleaner.
func (s *Service) OfferView(ctx context.Context, offerID, cleanerID int64) (view.OfferView, error) {
	o, err := s.getOwnOffer(ctx, offerID, cleanerID)
	if err != nil {
		return view.OfferView{}, err
	}

	rooms, err := s.assignments.ListForCleaner(ctx, o.JobID, cleanerID)
	if err != nil {
		return view.OfferView{}, err
	}
	return view.BuildOfferView(o, rooms, s.policy.FeePercent, s.clk.Now()), nil
}

func (s *Service) getOwnOffer(ctx context.Context, offerID, cleanerID int64) (*domain.Offer, error) {
	o, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.CleanerID != cleanerID {
		return nil, ErrForbidden
	}
	return o, nil
}

// AcceptOffer confirms a slot for the offer's cleaner. Expiry is
// enforced here, not just displayed: an expired offer is marked and
// refused.
func (s *Service) AcceptOffer(ctx context.Context, offerID, cleanerID int64) (*domain.Job, error) {
	o, err := s.getOwnOffer(ctx, offerID, cleanerID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OfferPending {
		return nil, ErrOfferResolved
	}

	now := s.clk.Now()
	if o.Expired(now) {
		_, _ = s.offers.Resolve(ctx, offerID, domain.OfferExpired, "", now)
		return nil, ErrOfferExpired
	}

	j, err := s.jobs.ConfirmSlot(ctx, o.JobID)
	if err != nil {
		return nil, mapSlotErr(err)
	}

	if _, err := s.offers.Resolve(ctx, offerID, domain.OfferAccepted, "", now); err != nil {
		// the slot is taken but the offer row lost the race; surface it
		return nil, ErrOfferResolved
	}

	if j.IsFilled() && s.notifs != nil {
		_ = s.notifs.NotifyJobFilled(ctx, j.HomeownerID, j.ID)
	}
	return j, nil
}

// DeclineOffer records the cleaner's reason and resolves the offer.
// The two-step reveal lives client-side; the server accepts a single
// decline with whatever reason text arrived.
func (s *Service) DeclineOffer(ctx context.Context, offerID, cleanerID int64, reason string) (*domain.Offer, error) {
	o, err := s.getOwnOffer(ctx, offerID, cleanerID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OfferPending {
		return nil, ErrOfferResolved
	}

	resolved, err := s.offers.Resolve(ctx, offerID, domain.OfferDeclined, reason, s.clk.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferResolved
		}
		return nil, err
	}
	return resolved, nil
}

// AcceptSolo is the large-home "Clean Solo" path. The client gates it
// behind an acknowledgment checkbox; the server refuses the request
// unless that acknowledgment actually arrived.
func (s *Service) AcceptSolo(ctx context.Context, jobID, cleanerID int64, acknowledged bool) (*domain.Job, error) {
	if !acknowledged {
		return nil, ErrAcknowledgmentRequired
	}

	j, err := s.jobs.ConfirmSlot(ctx, jobID)
	if err != nil {
		return nil, mapSlotErr(err)
	}
	if err := s.recordDirectConfirm(ctx, j, cleanerID); err != nil {
		return nil, err
	}
	return j, nil
}

// RequestJoinTeam confirms directly with no formal offer step.
func (s *Service) RequestJoinTeam(ctx context.Context, jobID, cleanerID int64) (*domain.Job, error) {
	j, err := s.jobs.ConfirmSlot(ctx, jobID)
	if err != nil {
		return nil, mapSlotErr(err)
	}

	if err := s.recordDirectConfirm(ctx, j, cleanerID); err != nil {
		return nil, err
	}
	if j.IsFilled() && s.notifs != nil {
		_ = s.notifs.NotifyJobFilled(ctx, j.HomeownerID, j.ID)
	}
	return j, nil
}

// BookWithTeam fills several slots at once for a business owner's
// employees. Requires at least two open slots and employees that
// actually belong to the owner.
func (s *Service) BookWithTeam(ctx context.Context, jobID, ownerID int64, employeeIDs []int64) (*domain.Job, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, ErrForbidden
	}
	if owner.Role != domain.RoleBusinessOwner {
		return nil, ErrForbidden
	}

	employees, err := s.users.ListEmployees(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(employees) == 0 {
		return nil, ErrNoEmployees
	}

	allowed := make(map[int64]bool, len(employees))
	for _, e := range employees {
		allowed[e.ID] = true
	}
	for _, id := range employeeIDs {
		if !allowed[id] {
			return nil, ErrForbidden
		}
	}

	j, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.SlotsRemaining() < 2 || len(employeeIDs) < 2 {
		return nil, ErrNotEnoughSlots
	}
	if len(employeeIDs) > j.SlotsRemaining() {
		return nil, ErrNotEnoughSlots
	}

	j, err = s.jobs.ConfirmSlots(ctx, jobID, len(employeeIDs))
	if err != nil {
		return nil, mapSlotErr(err)
	}

	if j.IsFilled() && s.notifs != nil {
		_ = s.notifs.NotifyJobFilled(ctx, j.HomeownerID, j.ID)
	}
	return j, nil
}

// Dropout releases the cleaner's slot. When exactly one confirmed
// cleaner remains on an in-progress job, a solo-completion offer is
// created for them and the homeowner is flagged for remediation.
func (s *Service) Dropout(ctx context.Context, jobID, cleanerID int64) (*domain.Job, error) {
	before, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	wasInProgress := before.Status == domain.JobInProgress

	j, err := s.jobs.ReleaseSlot(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrNoSlot) {
			return nil, ErrValidation // nobody confirmed, nothing to release
		}
		return nil, err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifyDropout(ctx, j.HomeownerID, j.ID, j.CleanersConfirmed)
	}

	if wasInProgress && j.CleanersConfirmed == 1 {
		if err := s.createSoloOffer(ctx, j, cleanerID); err != nil {
			return nil, err
		}
	}
	return j, nil
}

func (s *Service) createSoloOffer(ctx context.Context, j *domain.Job, droppedCleanerID int64) error {
	rooms, err := s.assignments.ListByJob(ctx, j.ID)
	if err != nil {
		return err
	}

	var remainingID int64
	for _, r := range rooms {
		if r.CleanerID != droppedCleanerID {
			remainingID = r.CleanerID
			break
		}
	}
	if remainingID == 0 {
		return nil // nothing to offer without a remaining cleaner
	}

	// what the remaining cleaner was owed for their share
	perCleaner := domain.Cents(int64(j.TotalJobPrice) / int64(j.TotalCleanersRequired))
	_, originalShare := domain.SplitFee(perCleaner, s.policy.FeePercent)
	// full payment if they finish alone
	_, soloEarnings := domain.SplitFee(j.TotalJobPrice, s.policy.FeePercent)

	o := &domain.SoloOffer{
		JobID:         j.ID,
		CleanerID:     remainingID,
		Status:        domain.OfferPending,
		ExpiresAt:     s.clk.Now().Add(s.policy.SoloOfferTTL),
		OriginalShare: originalShare,
		SoloEarnings:  soloEarnings,
	}
	if err := s.offers.CreateSolo(ctx, o); err != nil {
		return err
	}

	if s.notifs != nil {
		_ = s.notifs.NotifySoloOffer(ctx, remainingID, o.ID, j.ID)
	}
	return nil
}

// DropoutOptions is the homeowner's remediation payload.
func (s *Service) DropoutOptions(ctx context.Context, jobID int64) ([]view.DropoutOption, error) {
	j, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	return view.BuildDropoutOptions(j.CleanersConfirmed), nil
}

// DropoutChoice applies exactly one of the four remediation paths.
// Every path is penalty-free to the homeowner: the change was
// cleaner-initiated.
func (s *Service) DropoutChoice(ctx context.Context, jobID, homeownerID int64, option string) (*domain.Job, error) {
	j, err := s.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if j.HomeownerID != homeownerID {
		return nil, ErrForbidden
	}

	switch option {
	case view.DropoutProceed:
		// remaining cleaners carry on; no state change needed
	case view.DropoutWait:
		if err := s.jobs.UpdateStatus(ctx, jobID, domain.JobOpen); err != nil {
			return nil, err
		}
	case view.DropoutReschedule, view.DropoutCancel:
		if err := s.jobs.UpdateStatus(ctx, jobID, domain.JobCancelled); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidDropoutOption
	}

	return s.GetJob(ctx, jobID)
}

// SoloOfferView renders the binary solo-completion decision.
func (s *Service) SoloOfferView(ctx context.Context, offerID, cleanerID int64) (view.SoloOfferView, error) {
	o, err := s.getOwnSoloOffer(ctx, offerID, cleanerID)
	if err != nil {
		return view.SoloOfferView{}, err
	}

	v, err := view.BuildSoloOfferView(o, s.clk.Now())
	if err != nil {
		return view.SoloOfferView{}, ErrValidation
	}
	return v, nil
}

func (s *Service) getOwnSoloOffer(ctx context.Context, offerID, cleanerID int64) (*domain.SoloOffer, error) {
	o, err := s.offers.GetSoloByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if o.CleanerID != cleanerID {
		return nil, ErrForbidden
	}
	return o, nil
}

// AcceptSoloOffer converts the remaining cleaner's partial share into
// full payment and hands them every room on the job.
func (s *Service) AcceptSoloOffer(ctx context.Context, offerID, cleanerID int64) (*domain.SoloOffer, error) {
	o, err := s.getOwnSoloOffer(ctx, offerID, cleanerID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OfferPending {
		return nil, ErrOfferResolved
	}

	now := s.clk.Now()
	if o.Expired(now) {
		_, _ = s.offers.ResolveSolo(ctx, offerID, domain.OfferExpired, now)
		return nil, ErrOfferExpired
	}

	resolved, err := s.offers.ResolveSolo(ctx, offerID, domain.OfferAccepted, now)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferResolved
		}
		return nil, err
	}

	if err := s.assignments.ReassignAllTo(ctx, o.JobID, cleanerID); err != nil {
		return nil, err
	}
	if err := s.jobs.UpdateStatus(ctx, o.JobID, domain.JobInProgress); err != nil {
		return nil, err
	}
	return resolved, nil
}

func (s *Service) DeclineSoloOffer(ctx context.Context, offerID, cleanerID int64) (*domain.SoloOffer, error) {
	o, err := s.getOwnSoloOffer(ctx, offerID, cleanerID)
	if err != nil {
		return nil, err
	}
	if o.Status != domain.OfferPending {
		return nil, ErrOfferResolved
	}

	resolved, err := s.offers.ResolveSolo(ctx, offerID, domain.OfferDeclined, s.clk.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferResolved
		}
		return nil, err
	}
	return resolved, nil
}

// ExpireOffers sweeps pending offers past their deadline; called
// periodically by the API process.
func (s *Service) ExpireOffers(ctx context.Context) (int64, error) {
	return s.offers.ExpirePending(ctx, s.clk.Now())
}
