package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"task-marketplace.com/task-marketplace/internal/constants"
	apperrors "task-marketplace.com/task-marketplace/internal/errors"
	model "task-marketplace.com/task-marketplace/internal/models"
	repository "task-marketplace.com/task-marketplace/internal/repositories"
)

// SystemSenderID is the sender of messages generated by state transitions.
const SystemSenderID = "system"

type MessageService struct {
	store  *repository.Store
	notify NotificationDispatcher
	log    *slog.Logger
}

func NewMessageService(store *repository.Store, notify NotificationDispatcher, log *slog.Logger) *MessageService {
	return &MessageService{
		store:  store,
		notify: notify,
		log:    log,
	}
}

func (s *MessageService) SendSystemMessage(ctx context.Context, taskID, toUserID, text string) (*model.TaskMessage, error) {
	return s.create(ctx, taskID, SystemSenderID, toUserID, text, constants.MessageSystem)
}

func (s *MessageService) SendValidationCode(ctx context.Context, taskID, toUserID, text string) (*model.TaskMessage, error) {
	return s.create(ctx, taskID, SystemSenderID, toUserID, text, constants.MessageValidationCode)
}

// Narrate sends a system message after a committed transition. Failures are
// logged and swallowed.
func (s *MessageService) Narrate(ctx context.Context, taskID, toUserID, text string) {
	if _, err := s.SendSystemMessage(ctx, taskID, toUserID, text); err != nil {
		s.log.Warn("system message not delivered", "task_id", taskID, "user_id", toUserID, "error", err)
	}
}

// SendMessage posts a user message between two participants of a task.
func (s *MessageService) SendMessage(
	ctx context.Context,
	taskID, senderID, receiverID, content string,
	messageType constants.MessageType,
) (*model.TaskMessage, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.Validation("message content is required")
	}
	if messageType == "" {
		messageType = constants.MessageText
	}
	if !messageType.Valid() || messageType == constants.MessageSystem {
		return nil, apperrors.Validation("invalid message type: " + string(messageType))
	}

	if err := s.requireParticipant(ctx, taskID, senderID); err != nil {
		return nil, err
	}
	if err := s.requireParticipant(ctx, taskID, receiverID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, apperrors.Validation("receiver is not a participant of this task")
		}
		return nil, err
	}

	msg, err := s.create(ctx, taskID, senderID, receiverID, content, messageType)
	if err != nil {
		return nil, err
	}

	s.notify.Notify(receiverID, constants.NotifyMessageReceived, map[string]string{
		"task_id":    taskID,
		"message_id": msg.ID,
		"sender_id":  senderID,
	})
	return msg, nil
}

func (s *MessageService) GetTaskMessages(ctx context.Context, taskID, userID string) ([]model.TaskMessage, error) {
	if err := s.requireParticipant(ctx, taskID, userID); err != nil {
		return nil, err
	}
	return s.store.Messages.ListByTask(ctx, taskID)
}

func (s *MessageService) MarkMessagesAsRead(ctx context.Context, taskID, userID string) (int64, error) {
	if err := s.requireParticipant(ctx, taskID, userID); err != nil {
		return 0, err
	}
	return s.store.Messages.MarkRead(ctx, taskID, userID)
}

func (s *MessageService) GetUnreadMessagesCount(ctx context.Context, userID string) (int64, error) {
	return s.store.Messages.CountUnread(ctx, userID)
}

func (s *MessageService) create(
	ctx context.Context,
	taskID, senderID, receiverID, content string,
	messageType constants.MessageType,
) (*model.TaskMessage, error) {
	msg := &model.TaskMessage{
		TaskID:      taskID,
		SenderID:    senderID,
		ReceiverID:  receiverID,
		Content:     content,
		MessageType: messageType,
	}
	if err := s.store.Messages.Create(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// requireParticipant accepts the task owner and anyone who applied to it.
func (s *MessageService) requireParticipant(ctx context.Context, taskID, userID string) error {
	task, err := s.store.Tasks.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.UserID == userID {
		return nil
	}

	_, err = s.store.Applications.FindByTaskAndApplicant(ctx, taskID, userID)
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.Unauthorized("you are not a participant of this task")
	}
	return err
}
