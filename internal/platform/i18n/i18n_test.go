package i18n_test

import (
	"testing"

	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
)

func TestTranslator_Korean(t *testing.T) {
	tr := i18n.New("ko")

	tests := []struct {
		key  string
		args []any
		want string
	}{
		{i18n.QuizSetupTitle, nil, "퀴즈 설정"},
		{i18n.QuizProgress, []any{3, 10, "07", "보통"}, "문제 3 / 10 · CH 07 · 보통"},
		{i18n.QuizFinished, []any{10, 7}, "퀴즈 완료! 10문제 중 7개 정답"},
		{i18n.QuizBestSummary, []any{8, 10, 3}, "(최고 점수: 8/10, 누적 시도: 3회)"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.key, tt.args...); got != tt.want {
			t.Errorf("T(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestTranslator_English(t *testing.T) {
	tr := i18n.New("en-US")
	if tr.Locale() != "en" {
		t.Fatalf("Locale() = %q, want en", tr.Locale())
	}
	if got := tr.T(i18n.QuizFinished, 10, 7); got != "Quiz complete! 7 of 10 correct" {
		t.Errorf("T(QuizFinished) = %q", got)
	}
}

func TestNew_UnknownLocaleFallsBackToKorean(t *testing.T) {
	for _, locale := range []string{"", "fr", "zz-ZZ"} {
		if got := i18n.New(locale).Locale(); got != "ko" {
			t.Errorf("New(%q).Locale() = %q, want ko", locale, got)
		}
	}
}
