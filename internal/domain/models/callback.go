package models

import (
	"strconv"
	"strings"

	"github.com/central-university-dev/go-news-bot/internal/domain/errors"
)

type CallbackKind int

const (
	CallbackSelectSource CallbackKind = iota + 1
	CallbackSelectInterval
)

const (
	selectSourcePrefix   = "sub_source_"
	selectIntervalPrefix = "sub_interval_"
)

// CallbackPayload - типизированное содержимое callback_data кнопок меню подписки.
type CallbackPayload struct {
	Kind    CallbackKind
	Source  string
	Minutes int
}

func SelectSourcePayload(source string) CallbackPayload {
	return CallbackPayload{Kind: CallbackSelectSource, Source: source}
}

func SelectIntervalPayload(source string, minutes int) CallbackPayload {
	return CallbackPayload{Kind: CallbackSelectInterval, Source: source, Minutes: minutes}
}

func (p CallbackPayload) Encode() string {
	switch p.Kind {
	case CallbackSelectSource:
		return selectSourcePrefix + p.Source
	case CallbackSelectInterval:
		return selectIntervalPrefix + p.Source + "_" + strconv.Itoa(p.Minutes)
	default:
		return ""
	}
}

func ParseCallbackPayload(data string) (CallbackPayload, error) {
	switch {
	case strings.HasPrefix(data, selectIntervalPrefix):
		rest := strings.TrimPrefix(data, selectIntervalPrefix)

		sep := strings.LastIndex(rest, "_")
		if sep <= 0 {
			return CallbackPayload{}, &errors.ErrInvalidCallback{Data: data}
		}

		minutes, err := strconv.Atoi(rest[sep+1:])
		if err != nil || minutes <= 0 {
			return CallbackPayload{}, &errors.ErrInvalidCallback{Data: data}
		}

		return SelectIntervalPayload(rest[:sep], minutes), nil
	case strings.HasPrefix(data, selectSourcePrefix):
		source := strings.TrimPrefix(data, selectSourcePrefix)
		if source == "" {
			return CallbackPayload{}, &errors.ErrInvalidCallback{Data: data}
		}

		return SelectSourcePayload(source), nil
	default:
		return CallbackPayload{}, &errors.ErrInvalidCallback{Data: data}
	}
}
