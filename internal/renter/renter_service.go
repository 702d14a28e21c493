package renter

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"proryx/internal/events"
	"proryx/internal/messaging/kafka"
	rentererrors "proryx/internal/renter/errors"
	"proryx/internal/shared/apperror"
	"proryx/internal/shared/contextutil"
	"proryx/internal/tenancy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=renter_service.go -destination=mock/renter_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, tc tenancy.Context, req CreateRenterRequest) (RenterResponse, error)
	GetAll(ctx context.Context, tc tenancy.Context) ([]RenterResponse, error)
	GetByUUID(ctx context.Context, tc tenancy.Context, id string) (RenterResponse, error)
	Update(ctx context.Context, tc tenancy.Context, id string, req UpdateRenterRequest) (RenterResponse, error)
	Delete(ctx context.Context, tc tenancy.Context, id string) error

	Blacklist(ctx context.Context, tc tenancy.Context, id string, actorID int64, reason string) (RenterResponse, error)
	Unblacklist(ctx context.Context, tc tenancy.Context, id string) (RenterResponse, error)

	RequestKYCReview(ctx context.Context, tc tenancy.Context, id string, actorID int64) error
	EnsureMandatoryDocuments(ctx context.Context, tc tenancy.Context, id string) error
	BeginDocumentReview(ctx context.Context, tc tenancy.Context, id string) error

	AddContact(ctx context.Context, tc tenancy.Context, renterUUID string, req AddContactRequest) (ContactResponse, error)
	ListContacts(ctx context.Context, tc tenancy.Context, renterUUID string) ([]ContactResponse, error)
	UpdateContact(ctx context.Context, tc tenancy.Context, renterUUID, contactUUID string, req UpdateContactRequest) (ContactResponse, error)
	RemoveContact(ctx context.Context, tc tenancy.Context, renterUUID, contactUUID string) error

	AddDocument(ctx context.Context, tc tenancy.Context, renterUUID string, req AddDocumentRequest) (DocumentResponse, error)
	ListDocuments(ctx context.Context, tc tenancy.Context, renterUUID string) ([]DocumentResponse, error)
	VerifyDocument(ctx context.Context, tc tenancy.Context, renterUUID, documentUUID string, actorID int64) (RenterResponse, error)
	RejectDocument(ctx context.Context, tc tenancy.Context, renterUUID, documentUUID string, actorID int64, reason string) (RenterResponse, error)
	RemoveDocument(ctx context.Context, tc tenancy.Context, renterUUID, documentUUID string) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
	now    func() time.Time
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("renter.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("renter.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		logger: l,
		now:    time.Now,
	}
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, tenancy.ErrNotFound) {
		return rentererrors.ErrRenterNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "renter_code") {
			return rentererrors.ErrRenterCodeTaken
		}
	}

	return apperror.Wrap(err, apperror.CodeInternalError, "renter repository failure", 500)
}

func (s *service) Create(
	ctx context.Context,
	tc tenancy.Context,
	req CreateRenterRequest,
) (RenterResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create renter requested",
		zap.String("request_id", rid),
		zap.Int64("account_id", tc.AccountID),
		zap.Int64("company_id", tc.CompanyID),
		zap.String("renter_code", req.RenterCode),
	)

	if !ValidRenterType(req.RenterType) {
		return RenterResponse{}, rentererrors.ErrInvalidRenterType
	}

	if _, err := s.repo.FindByCode(ctx, tc, req.RenterCode); err == nil {
		return RenterResponse{}, rentererrors.ErrRenterCodeTaken
	}

	rn := &Renter{
		RenterCode:  strings.TrimSpace(req.RenterCode),
		RenterType:  req.RenterType,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		EntityName:  req.EntityName,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		Nationality: req.Nationality,
		KYCStatus:   KYCNotStarted,
		Status:      StatusActive,
		Notes:       req.Notes,
	}

	// The row and its lifecycle event commit or roll back together.
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.WithTx(tx).Create(ctx, tc, rn); err != nil {
			return err
		}

		evt := events.RenterCreatedEvent{
			EventType:  "renter.created",
			RenterUUID: rn.UUID.String(),
			AccountID:  tc.AccountID,
			CompanyID:  tc.CompanyID,
			RenterType: rn.RenterType,
			OccurredAt: s.now().UTC(),
		}
		payload, err := json.Marshal(evt)
		if err != nil {
			return err
		}

		return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "renter",
			AggregateID:   rn.UUID.String(),
			EventType:     evt.EventType,
			Topic:         events.RenterCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
	if err != nil {
		s.logger.Error("create renter failed", zap.String("request_id", rid), zap.Error(err))
		return RenterResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(rn), nil
}

func (s *service) GetAll(ctx context.Context, tc tenancy.Context) ([]RenterResponse, error) {
	renters, err := s.repo.FindAll(ctx, tc)
	if err != nil {
		s.logger.Error("get all renters failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	result := make([]RenterResponse, 0, len(renters))
	for i := range renters {
		result = append(result, mapToResponse(&renters[i]))
	}
	return result, nil
}

func (s *service) GetByUUID(ctx context.Context, tc tenancy.Context, id string) (RenterResponse, error) {
	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return RenterResponse{}, err
	}
	return mapToResponse(rn), nil
}

func (s *service) Update(
	ctx context.Context,
	tc tenancy.Context,
	id string,
	req UpdateRenterRequest,
) (RenterResponse, error) {
	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return RenterResponse{}, err
	}

	if req.FirstName != "" {
		rn.FirstName = req.FirstName
	}
	if req.LastName != "" {
		rn.LastName = req.LastName
	}
	if req.EntityName != "" {
		rn.EntityName = req.EntityName
	}
	if req.Email != "" {
		rn.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		rn.Phone = req.Phone
	}
	if req.Nationality != "" {
		rn.Nationality = req.Nationality
	}
	if req.Notes != "" {
		rn.Notes = req.Notes
	}
	if req.Status != "" {
		if !ValidRenterStatus(req.Status) {
			return RenterResponse{}, rentererrors.ErrInvalidStatus
		}
		// Blacklisting goes through its own operation so a reason and
		// actor are always recorded.
		if req.Status == StatusBlacklisted {
			return RenterResponse{}, rentererrors.ErrBlacklistReasonRequired
		}
		rn.Status = req.Status
	}

	if err := s.repo.Update(ctx, tc, rn); err != nil {
		s.logger.Error("update renter failed", zap.Error(err))
		return RenterResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(rn), nil
}

func (s *service) Delete(ctx context.Context, tc tenancy.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return rentererrors.ErrInvalidRenterID
	}

	if err := s.repo.Delete(ctx, tc, uid); err != nil {
		s.logger.Error("delete renter failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) Blacklist(
	ctx context.Context,
	tc tenancy.Context,
	id string,
	actorID int64,
	reason string,
) (RenterResponse, error) {
	if strings.TrimSpace(reason) == "" {
		return RenterResponse{}, rentererrors.ErrBlacklistReasonRequired
	}

	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return RenterResponse{}, err
	}

	if rn.Status == StatusBlacklisted {
		return RenterResponse{}, rentererrors.ErrAlreadyBlacklisted
	}

	now := s.now()
	rn.Status = StatusBlacklisted
	rn.BlacklistReason = reason
	rn.BlacklistedAt = &now
	rn.BlacklistedBy = &actorID

	if err := s.repo.Update(ctx, tc, rn); err != nil {
		return RenterResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("renter blacklisted",
		zap.String("renter_uuid", rn.UUID.String()),
		zap.Int64("actor_id", actorID),
	)
	return mapToResponse(rn), nil
}

func (s *service) Unblacklist(ctx context.Context, tc tenancy.Context, id string) (RenterResponse, error) {
	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return RenterResponse{}, err
	}

	if rn.Status != StatusBlacklisted {
		return RenterResponse{}, rentererrors.ErrNotBlacklisted
	}

	rn.Status = StatusActive
	rn.BlacklistReason = ""
	rn.BlacklistedAt = nil
	rn.BlacklistedBy = nil

	if err := s.repo.Update(ctx, tc, rn); err != nil {
		return RenterResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(rn), nil
}

// RequestKYCReview queues a review through the outbox. The review
// consumer picks the event up and moves the uploaded documents into
// under_review.
func (s *service) RequestKYCReview(ctx context.Context, tc tenancy.Context, id string, actorID int64) error {
	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return err
	}

	evt := events.RenterKYCRequestedEvent{
		EventType:   "renter.kyc.requested",
		RenterUUID:  rn.UUID.String(),
		AccountID:   tc.AccountID,
		CompanyID:   tc.CompanyID,
		RequestedBy: strconv.FormatInt(actorID, 10),
		OccurredAt:  s.now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "encode kyc request", 500)
	}

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "renter",
		AggregateID:   rn.UUID.String(),
		EventType:     evt.EventType,
		Topic:         events.RenterKYCRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil {
		s.logger.Error("queue kyc review failed", zap.Error(err))
		return apperror.Wrap(err, apperror.CodeInternalError, "queue kyc review", 500)
	}
	return nil
}

// EnsureMandatoryDocuments creates a not_uploaded placeholder for every
// mandatory document type the renter is missing. Safe to replay.
func (s *service) EnsureMandatoryDocuments(ctx context.Context, tc tenancy.Context, id string) error {
	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return err
	}

	docs, err := s.repo.ListDocuments(ctx, tc, rn.ID)
	if err != nil {
		return mapRepositoryError(err)
	}

	present := make(map[string]bool, len(docs))
	for i := range docs {
		present[docs[i].DocumentType] = true
	}

	for _, dt := range MandatoryDocumentTypes(rn.RenterType) {
		if present[dt.Code] {
			continue
		}
		d := &RenterDocument{
			RenterID:           rn.ID,
			DocumentType:       dt.Code,
			VerificationStatus: DocNotUploaded,
		}
		if err := s.repo.CreateDocument(ctx, tc, d); err != nil {
			return mapRepositoryError(err)
		}
		s.logger.Info("mandatory document placeholder created",
			zap.String("renter_uuid", rn.UUID.String()),
			zap.String("document_type", dt.Code),
		)
	}

	if rn.KYCStatus == KYCNotStarted {
		rn.KYCStatus = KYCIncomplete
		if err := s.repo.Update(ctx, tc, rn); err != nil {
			return mapRepositoryError(err)
		}
	}
	return nil
}

// BeginDocumentReview moves every uploaded document into under_review
// and the renter into pending_verification.
func (s *service) BeginDocumentReview(ctx context.Context, tc tenancy.Context, id string) error {
	rn, err := s.resolve(ctx, tc, id)
	if err != nil {
		return err
	}

	docs, err := s.repo.ListDocuments(ctx, tc, rn.ID)
	if err != nil {
		return mapRepositoryError(err)
	}

	moved := 0
	for i := range docs {
		if docs[i].VerificationStatus != DocUploaded {
			continue
		}
		docs[i].VerificationStatus = DocUnderReview
		if err := s.repo.UpdateDocument(ctx, tc, &docs[i]); err != nil {
			return mapRepositoryError(err)
		}
		moved++
	}

	if moved > 0 && rn.KYCStatus != KYCPendingVerification {
		rn.KYCStatus = KYCPendingVerification
		if err := s.repo.Update(ctx, tc, rn); err != nil {
			return mapRepositoryError(err)
		}
	}
	return nil
}

func (s *service) AddContact(
	ctx context.Context,
	tc tenancy.Context,
	renterUUID string,
	req AddContactRequest,
) (ContactResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return ContactResponse{}, err
	}

	if req.IsPrimary {
		if err := s.repo.ClearPrimaryContacts(ctx, tc, rn.ID); err != nil {
			return ContactResponse{}, mapRepositoryError(err)
		}
	}

	c := &RenterContact{
		RenterID:    rn.ID,
		ContactName: req.ContactName,
		Role:        req.Role,
		Email:       strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:       req.Phone,
		IsPrimary:   req.IsPrimary,
	}
	if err := s.repo.CreateContact(ctx, tc, c); err != nil {
		return ContactResponse{}, mapRepositoryError(err)
	}
	return mapContactToResponse(c), nil
}

func (s *service) ListContacts(ctx context.Context, tc tenancy.Context, renterUUID string) ([]ContactResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return nil, err
	}

	contacts, err := s.repo.ListContacts(ctx, tc, rn.ID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	result := make([]ContactResponse, 0, len(contacts))
	for i := range contacts {
		result = append(result, mapContactToResponse(&contacts[i]))
	}
	return result, nil
}

func (s *service) UpdateContact(
	ctx context.Context,
	tc tenancy.Context,
	renterUUID, contactUUID string,
	req UpdateContactRequest,
) (ContactResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return ContactResponse{}, err
	}

	c, err := s.resolveContact(ctx, tc, rn, contactUUID)
	if err != nil {
		return ContactResponse{}, err
	}

	if req.ContactName != "" {
		c.ContactName = req.ContactName
	}
	if req.Role != "" {
		c.Role = req.Role
	}
	if req.Email != "" {
		c.Email = strings.ToLower(strings.TrimSpace(req.Email))
	}
	if req.Phone != "" {
		c.Phone = req.Phone
	}
	if req.IsPrimary != nil {
		if *req.IsPrimary {
			if err := s.repo.ClearPrimaryContacts(ctx, tc, rn.ID); err != nil {
				return ContactResponse{}, mapRepositoryError(err)
			}
		}
		c.IsPrimary = *req.IsPrimary
	}

	if err := s.repo.UpdateContact(ctx, tc, c); err != nil {
		return ContactResponse{}, mapRepositoryError(err)
	}
	return mapContactToResponse(c), nil
}

func (s *service) RemoveContact(ctx context.Context, tc tenancy.Context, renterUUID, contactUUID string) error {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return err
	}

	c, err := s.resolveContact(ctx, tc, rn, contactUUID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteContact(ctx, tc, c.UUID); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) AddDocument(
	ctx context.Context,
	tc tenancy.Context,
	renterUUID string,
	req AddDocumentRequest,
) (DocumentResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return DocumentResponse{}, err
	}

	dt, ok := DocumentTypeByCode(req.DocumentType)
	if !ok {
		return DocumentResponse{}, rentererrors.ErrUnknownDocumentType
	}
	if dt.AppliesTo != "" && dt.AppliesTo != rn.RenterType {
		return DocumentResponse{}, rentererrors.ErrDocumentTypeNotApplicable
	}

	// An existing placeholder for this type is filled in place rather
	// than duplicated.
	docs, err := s.repo.ListDocuments(ctx, tc, rn.ID)
	if err != nil {
		return DocumentResponse{}, mapRepositoryError(err)
	}

	var target *RenterDocument
	for i := range docs {
		if docs[i].DocumentType == dt.Code && docs[i].VerificationStatus == DocNotUploaded {
			target = &docs[i]
			break
		}
	}

	if target == nil {
		target = &RenterDocument{
			RenterID:     rn.ID,
			DocumentType: dt.Code,
		}
	}

	target.DocumentNumber = req.DocumentNumber
	target.ExpiryDate = req.ExpiryDate
	target.IssuingCountry = req.IssuingCountry
	target.FileReference = req.FileReference
	target.FileName = req.FileName
	target.VerificationStatus = DocUploaded
	target.RejectionReason = ""

	if target.ID == 0 {
		err = s.repo.CreateDocument(ctx, tc, target)
	} else {
		err = s.repo.UpdateDocument(ctx, tc, target)
	}
	if err != nil {
		return DocumentResponse{}, mapRepositoryError(err)
	}

	if err := s.refreshKYCStatus(ctx, tc, rn); err != nil {
		return DocumentResponse{}, err
	}
	return s.mapDocumentToResponse(target), nil
}

func (s *service) ListDocuments(ctx context.Context, tc tenancy.Context, renterUUID string) ([]DocumentResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return nil, err
	}

	docs, err := s.repo.ListDocuments(ctx, tc, rn.ID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	result := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		result = append(result, s.mapDocumentToResponse(&docs[i]))
	}
	return result, nil
}

func (s *service) VerifyDocument(
	ctx context.Context,
	tc tenancy.Context,
	renterUUID, documentUUID string,
	actorID int64,
) (RenterResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return RenterResponse{}, err
	}

	d, err := s.resolveDocument(ctx, tc, rn, documentUUID)
	if err != nil {
		return RenterResponse{}, err
	}

	if d.VerificationStatus != DocUploaded && d.VerificationStatus != DocUnderReview {
		return RenterResponse{}, rentererrors.ErrDocumentNotReviewable
	}

	now := s.now()
	d.VerificationStatus = DocVerified
	d.VerifiedAt = &now
	d.VerifiedBy = &actorID
	d.RejectionReason = ""

	if err := s.repo.UpdateDocument(ctx, tc, d); err != nil {
		return RenterResponse{}, mapRepositoryError(err)
	}

	rn.KYCVerifiedBy = &actorID
	if err := s.refreshKYCStatus(ctx, tc, rn); err != nil {
		return RenterResponse{}, err
	}
	return mapToResponse(rn), nil
}

func (s *service) RejectDocument(
	ctx context.Context,
	tc tenancy.Context,
	renterUUID, documentUUID string,
	actorID int64,
	reason string,
) (RenterResponse, error) {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return RenterResponse{}, err
	}

	d, err := s.resolveDocument(ctx, tc, rn, documentUUID)
	if err != nil {
		return RenterResponse{}, err
	}

	if d.VerificationStatus != DocUploaded && d.VerificationStatus != DocUnderReview {
		return RenterResponse{}, rentererrors.ErrDocumentNotReviewable
	}

	now := s.now()
	d.VerificationStatus = DocRejected
	d.VerifiedAt = &now
	d.VerifiedBy = &actorID
	d.RejectionReason = reason

	if err := s.repo.UpdateDocument(ctx, tc, d); err != nil {
		return RenterResponse{}, mapRepositoryError(err)
	}

	if err := s.refreshKYCStatus(ctx, tc, rn); err != nil {
		return RenterResponse{}, err
	}
	return mapToResponse(rn), nil
}

func (s *service) RemoveDocument(ctx context.Context, tc tenancy.Context, renterUUID, documentUUID string) error {
	rn, err := s.resolve(ctx, tc, renterUUID)
	if err != nil {
		return err
	}

	d, err := s.resolveDocument(ctx, tc, rn, documentUUID)
	if err != nil {
		return err
	}

	if err := s.repo.DeleteDocument(ctx, tc, d.UUID); err != nil {
		return mapRepositoryError(err)
	}
	return s.refreshKYCStatus(ctx, tc, rn)
}

// deriveKYCStatus folds the mandatory document states into one renter
// level status. Precedence: rejected, expired, verified, then review
// activity.
func (s *service) deriveKYCStatus(rn *Renter, docs []RenterDocument) string {
	byType := make(map[string]*RenterDocument)
	for i := range docs {
		d := &docs[i]
		if prev, ok := byType[d.DocumentType]; !ok || d.CreatedAt.After(prev.CreatedAt) {
			byType[d.DocumentType] = d
		}
	}

	mandatory := MandatoryDocumentTypes(rn.RenterType)
	now := s.now()

	allVerified := len(mandatory) > 0
	hasRejected := false
	hasExpired := false
	inReview := false

	for _, dt := range mandatory {
		d, ok := byType[dt.Code]
		if !ok || d.VerificationStatus == DocNotUploaded {
			allVerified = false
			continue
		}
		switch d.VerificationStatus {
		case DocRejected:
			hasRejected = true
			allVerified = false
		case DocUploaded, DocUnderReview:
			inReview = true
			allVerified = false
		case DocVerified:
			if d.IsExpired(now) {
				hasExpired = true
				allVerified = false
			}
		}
	}

	switch {
	case hasRejected:
		return KYCRejected
	case hasExpired:
		return KYCExpired
	case allVerified:
		return KYCVerified
	case inReview:
		return KYCPendingVerification
	case len(docs) > 0:
		return KYCIncomplete
	default:
		return KYCNotStarted
	}
}

func (s *service) refreshKYCStatus(ctx context.Context, tc tenancy.Context, rn *Renter) error {
	docs, err := s.repo.ListDocuments(ctx, tc, rn.ID)
	if err != nil {
		return mapRepositoryError(err)
	}

	next := s.deriveKYCStatus(rn, docs)
	if next == rn.KYCStatus {
		return nil
	}

	rn.KYCStatus = next
	if next == KYCVerified {
		now := s.now()
		rn.KYCVerifiedAt = &now
	} else {
		rn.KYCVerifiedAt = nil
	}

	if err := s.repo.Update(ctx, tc, rn); err != nil {
		return mapRepositoryError(err)
	}

	s.logger.Info("renter kyc status changed",
		zap.String("renter_uuid", rn.UUID.String()),
		zap.String("kyc_status", next),
	)
	return nil
}

func (s *service) resolve(ctx context.Context, tc tenancy.Context, id string) (*Renter, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, rentererrors.ErrInvalidRenterID
	}

	rn, err := s.repo.FindByUUID(ctx, tc, uid)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return rn, nil
}

func (s *service) resolveContact(
	ctx context.Context,
	tc tenancy.Context,
	rn *Renter,
	contactUUID string,
) (*RenterContact, error) {
	uid, err := uuid.Parse(contactUUID)
	if err != nil {
		return nil, rentererrors.ErrInvalidContactID
	}

	c, err := s.repo.FindContactByUUID(ctx, tc, uid)
	if err != nil || c.RenterID != rn.ID {
		// A contact under another renter answers the same way as one
		// that does not exist.
		return nil, rentererrors.ErrContactNotFound
	}
	return c, nil
}

func (s *service) resolveDocument(
	ctx context.Context,
	tc tenancy.Context,
	rn *Renter,
	documentUUID string,
) (*RenterDocument, error) {
	uid, err := uuid.Parse(documentUUID)
	if err != nil {
		return nil, rentererrors.ErrInvalidDocumentID
	}

	d, err := s.repo.FindDocumentByUUID(ctx, tc, uid)
	if err != nil || d.RenterID != rn.ID {
		return nil, rentererrors.ErrDocumentNotFound
	}
	return d, nil
}

func (s *service) mapDocumentToResponse(d *RenterDocument) DocumentResponse {
	dt, _ := DocumentTypeByCode(d.DocumentType)
	return DocumentResponse{
		UUID:               d.UUID.String(),
		DocumentType:       d.DocumentType,
		DocumentNumber:     d.DocumentNumber,
		ExpiryDate:         d.ExpiryDate,
		IssuingCountry:     d.IssuingCountry,
		FileName:           d.FileName,
		VerificationStatus: d.VerificationStatus,
		RejectionReason:    d.RejectionReason,
		Mandatory:          dt.Mandatory,
		CreatedAt:          d.CreatedAt,
	}
}

func mapContactToResponse(c *RenterContact) ContactResponse {
	return ContactResponse{
		UUID:        c.UUID.String(),
		ContactName: c.ContactName,
		Role:        c.Role,
		Email:       c.Email,
		Phone:       c.Phone,
		IsPrimary:   c.IsPrimary,
		CreatedAt:   c.CreatedAt,
	}
}

func mapToResponse(rn *Renter) RenterResponse {
	resp := RenterResponse{
		UUID:        rn.UUID.String(),
		RenterCode:  rn.RenterCode,
		RenterType:  rn.RenterType,
		DisplayName: rn.DisplayName(),
		FirstName:   rn.FirstName,
		LastName:    rn.LastName,
		EntityName:  rn.EntityName,
		Email:       rn.Email,
		Phone:       rn.Phone,
		Nationality: rn.Nationality,
		KYCStatus:   rn.KYCStatus,
		Status:      rn.Status,
		CreatedAt:   rn.CreatedAt,
	}
	if rn.Status == StatusBlacklisted && rn.BlacklistedAt != nil {
		resp.Blacklist = &Blacklist{Reason: rn.BlacklistReason, At: *rn.BlacklistedAt}
	}
	return resp
}
