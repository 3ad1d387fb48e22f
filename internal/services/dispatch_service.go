package services

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/NipunKodeboyena/KnockKnock/internal/domain/credential"
	"github.com/NipunKodeboyena/KnockKnock/internal/domain/dispatch"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/errors"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/logger"
	"github.com/NipunKodeboyena/KnockKnock/internal/pkg/metrics"
)

// DispatchService implements dispatch.Service
type DispatchService struct {
	credentials credential.Repository
	exchanger   dispatch.TokenExchanger
	transport   dispatch.MailTransport
	// sent is nil unless sent-mail logging is enabled
	sent   dispatch.Repository
	logger *logger.Logger
}

// NewDispatchService creates a new dispatch service. sent may be nil.
func NewDispatchService(
	credentials credential.Repository,
	exchanger dispatch.TokenExchanger,
	transport dispatch.MailTransport,
	sent dispatch.Repository,
	log *logger.Logger,
) *DispatchService {
	return &DispatchService{
		credentials: credentials,
		exchanger:   exchanger,
		transport:   transport,
		sent:        sent,
		logger:      log,
	}
}

// Send delivers one message from the user's linked Gmail account
func (s *DispatchService) Send(ctx context.Context, in dispatch.SendInput) error {
	log := s.logger.ForUser(in.UserID)

	cred, err := s.credentials.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) || stderrors.Is(err, credential.ErrMalformed) {
			metrics.RecordEmailSent("no_linked_account")
			log.Warn("No usable Gmail credential")
			return errors.NoLinkedAccount()
		}
		metrics.RecordEmailSent("error")
		log.ErrorWithErr(err, "Failed to load Gmail credential")
		return err
	}
	if strings.TrimSpace(cred.RefreshToken) == "" {
		metrics.RecordEmailSent("no_linked_account")
		log.Warn("Stored Gmail credential has no refresh token")
		return errors.NoLinkedAccount()
	}

	accessToken, err := s.exchanger.Exchange(ctx, cred.RefreshToken)
	if err != nil {
		metrics.RecordEmailSent("auth_failed")
		log.ErrorWithErr(err, "Google token refresh failed")
		return errors.AuthRefreshFailed(err)
	}

	messageID, err := s.transport.Send(ctx, accessToken, BuildRawMessage(in.To, in.Subject, in.Body))
	if err != nil {
		metrics.RecordEmailSent("failed")
		log.ErrorWithErr(err, "Gmail send failed")
		return errors.DispatchFailed(err)
	}

	metrics.RecordEmailSent("sent")
	log.With("gmail_message_id", messageID).Info("Email sent")

	if s.sent != nil {
		rec := &dispatch.SentEmail{
			UserID:         in.UserID,
			Recipient:      in.To,
			Subject:        in.Subject,
			Body:           in.Body,
			GmailMessageID: messageID,
		}
		if err := s.sent.Create(ctx, rec); err != nil {
			log.ErrorWithErr(err, "Failed to record sent email")
		}
	}

	return nil
}
