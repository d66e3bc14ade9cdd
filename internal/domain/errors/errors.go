package errors

import (
	"fmt"
)

type ErrUnknownSource struct {
	Source string
}

func (e *ErrUnknownSource) Error() string {
	return "неизвестный источник новостей: " + e.Source
}

func (e *ErrUnknownSource) Is(target error) bool {
	_, ok := target.(*ErrUnknownSource)
	return ok
}

type ErrUserNotFound struct {
	ChatIdentity string
}

func (e *ErrUserNotFound) Error() string {
	return "пользователь не найден: " + e.ChatIdentity
}

func (e *ErrUserNotFound) Is(target error) bool {
	_, ok := target.(*ErrUserNotFound)
	return ok
}

type ErrSubscriptionNotFound struct {
	UserID int64
	Source string
}

func (e *ErrSubscriptionNotFound) Error() string {
	return fmt.Sprintf("подписка пользователя %d на источник %s не найдена", e.UserID, e.Source)
}

func (e *ErrSubscriptionNotFound) Is(target error) bool {
	_, ok := target.(*ErrSubscriptionNotFound)
	return ok
}

type ErrDefaultSourceNotSet struct {
	UserID int64
}

func (e *ErrDefaultSourceNotSet) Error() string {
	return fmt.Sprintf("источник по умолчанию для пользователя %d не задан", e.UserID)
}

func (e *ErrDefaultSourceNotSet) Is(target error) bool {
	_, ok := target.(*ErrDefaultSourceNotSet)
	return ok
}

type ErrInvalidInterval struct {
	Minutes int
}

func (e *ErrInvalidInterval) Error() string {
	return fmt.Sprintf("некорректный интервал рассылки: %d мин", e.Minutes)
}

type ErrInvalidCallback struct {
	Data string
}

func (e *ErrInvalidCallback) Error() string {
	return "некорректные данные callback: " + e.Data
}

type ErrUnknownCommand struct {
	Command string
}

func (e *ErrUnknownCommand) Error() string {
	return "неизвестная команда: " + e.Command
}

// ErrMissingChatIdentity возникает, когда в сообщении о рассылке отсутствует адресат.
type ErrMissingChatIdentity struct{}

func (e *ErrMissingChatIdentity) Error() string {
	return "отсутствует обязательное поле chat_identity в сообщении о рассылке"
}

func (e *ErrMissingChatIdentity) Is(target error) bool {
	_, ok := target.(*ErrMissingChatIdentity)
	return ok
}

type ErrInvalidChatIdentity struct {
	ChatIdentity string
}

func (e *ErrInvalidChatIdentity) Error() string {
	return "некорректный идентификатор чата: " + e.ChatIdentity
}

type ErrUnknownDBAccessType struct {
	AccessType string
}

func (e *ErrUnknownDBAccessType) Error() string {
	return fmt.Sprintf("неизвестный тип доступа к базе данных: %s", e.AccessType)
}

type ErrUnknownTransport struct {
	Transport string
}

func (e *ErrUnknownTransport) Error() string {
	return fmt.Sprintf("неизвестный транспорт доставки: %s", e.Transport)
}

type ErrBuildSQLQuery struct {
	Operation string
	Cause     error
}

func (e *ErrBuildSQLQuery) Error() string {
	return fmt.Sprintf("ошибка при построении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrBuildSQLQuery) Unwrap() error {
	return e.Cause
}

type ErrSQLExecution struct {
	Operation string
	Cause     error
}

func (e *ErrSQLExecution) Error() string {
	return fmt.Sprintf("ошибка при выполнении SQL запроса для %s: %v", e.Operation, e.Cause)
}

func (e *ErrSQLExecution) Unwrap() error {
	return e.Cause
}

type ErrSQLScan struct {
	Entity string
	Cause  error
}

func (e *ErrSQLScan) Error() string {
	return fmt.Sprintf("ошибка при сканировании %s: %v", e.Entity, e.Cause)
}

func (e *ErrSQLScan) Unwrap() error {
	return e.Cause
}

type ErrProviderStatus struct {
	Status  string
	Code    string
	Message string
}

func (e *ErrProviderStatus) Error() string {
	return fmt.Sprintf("провайдер новостей вернул статус %s (%s): %s", e.Status, e.Code, e.Message)
}

type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error: %d", e.StatusCode)
}
