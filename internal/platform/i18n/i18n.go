// Package i18n holds the user-visible strings of the site in an x/text
// message catalog. Korean is the source language; English is provided for
// LEARN_SITE_LOCALE=en.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	QuizSetupTitle       = "quiz.setup.title"
	QuizAutoSelected     = "quiz.setup.selected"
	QuizNoMatch          = "quiz.setup.no_match"
	QuizResetFilters     = "quiz.setup.reset"
	QuizStart            = "quiz.setup.start"
	QuizEmptyProgress    = "quiz.empty.progress"
	QuizEmptyQuestion    = "quiz.empty.question"
	QuizEmptyHint        = "quiz.empty.hint"
	QuizGoToSetup        = "quiz.empty.to_setup"
	QuizProgress         = "quiz.progress"
	QuizNext             = "quiz.next"
	QuizFinished         = "quiz.finished"
	QuizPassed           = "quiz.finished.passed"
	QuizFailed           = "quiz.finished.failed"
	QuizBestSummary      = "quiz.finished.best"
	QuizBackToSetup      = "quiz.finished.back"
	QuizResult           = "quiz.finished.result"
	QuizSearch           = "quiz.filter.search"
	FilterAllChapters    = "quiz.filter.all_chapters"
	FilterAllDifficulty  = "quiz.filter.all_difficulty"
	SortRandom           = "quiz.sort.random"
	SortChapterAsc       = "quiz.sort.chapter_asc"
	SortDifficultyAsc    = "quiz.sort.difficulty_asc"
	SortDifficultyDesc   = "quiz.sort.difficulty_desc"
	ChapterOther         = "chapter.other"
	DifficultyEasy       = "difficulty.easy"
	DifficultyMedium     = "difficulty.medium"
	DifficultyHard       = "difficulty.hard"
	ChapterComplete      = "chapter.complete"
	ChapterDone          = "chapter.done"
	KeyPointsTitle       = "chapter.key_points"
	NavGlossary          = "nav.glossary"
	NavQuiz              = "nav.quiz"
	NavProgress          = "nav.progress"
	NavDonate            = "nav.donate"
	GlossarySearch       = "glossary.search"
	DonationTitle        = "donation.title"
	DonationCopied       = "donation.copied"
	DonationCopyFailed   = "donation.copy_failed"
	LegalTerms           = "legal.terms"
	LegalPrivacy         = "legal.privacy"
	Close                = "common.close"
)

var entries = []struct {
	key    string
	ko, en string
}{
	{QuizSetupTitle, "퀴즈 설정", "Quiz setup"},
	{QuizAutoSelected, "%d문제가 자동 선택되었습니다.", "%d questions selected automatically."},
	{QuizNoMatch, "조건에 맞는 문제가 없습니다. 필터를 조정해 주세요.", "No questions match. Adjust the filters."},
	{QuizResetFilters, "필터 초기화", "Reset filters"},
	{QuizStart, "퀴즈 시작 →", "Start quiz →"},
	{QuizEmptyProgress, "문제 0 / 0", "Question 0 / 0"},
	{QuizEmptyQuestion, "조건에 맞는 문제가 없습니다.", "No questions match."},
	{QuizEmptyHint, "검색어를 지우거나 챕터/난이도 필터를 조정해 주세요.", "Clear the search or adjust the chapter/difficulty filters."},
	{QuizGoToSetup, "설정으로 이동", "Go to setup"},
	{QuizProgress, "문제 %d / %d · CH %s · %s", "Question %d / %d · CH %s · %s"},
	{QuizNext, "다음 문제 →", "Next question →"},
	{QuizFinished, "퀴즈 완료! %d문제 중 %d개 정답", "Quiz complete! %[2]d of %[1]d correct"},
	{QuizPassed, "훌륭합니다! 크립토 개념을 잘 이해하고 있습니다.", "Great job! You understand the crypto concepts well."},
	{QuizFailed, "조금 더 복습해 보세요. 강의 노트를 다시 확인하면 도움이 됩니다.", "Review a bit more. Going over the lecture notes again will help."},
	{QuizBestSummary, "(최고 점수: %d/%d, 누적 시도: %d회)", "(best score: %d/%d, attempts: %d)"},
	{QuizBackToSetup, "설정으로 돌아가기", "Back to setup"},
	{QuizResult, "결과: %d / %d", "Result: %d / %d"},
	{QuizSearch, "문제 검색", "Search questions"},
	{FilterAllChapters, "챕터: 전체", "Chapter: all"},
	{FilterAllDifficulty, "난이도: 전체", "Difficulty: all"},
	{SortRandom, "정렬: 랜덤", "Sort: random"},
	{SortChapterAsc, "챕터순", "By chapter"},
	{SortDifficultyAsc, "난이도 낮은순", "Easiest first"},
	{SortDifficultyDesc, "난이도 높은순", "Hardest first"},
	{ChapterOther, "기타", "Other"},
	{DifficultyEasy, "쉬움", "Easy"},
	{DifficultyMedium, "보통", "Medium"},
	{DifficultyHard, "어려움", "Hard"},
	{ChapterComplete, "완료 체크", "Mark complete"},
	{ChapterDone, "완료됨", "Completed"},
	{KeyPointsTitle, "// 핵심 포인트", "// Key points"},
	{NavGlossary, "용어집", "Glossary"},
	{NavQuiz, "퀴즈", "Quiz"},
	{NavProgress, "학습 진도", "Progress"},
	{NavDonate, "후원하기", "Donate"},
	{GlossarySearch, "용어 검색", "Search terms"},
	{DonationTitle, "후원 주소", "Donation addresses"},
	{DonationCopied, "주소가 복사되었습니다.", "Address copied."},
	{DonationCopyFailed, "복사에 실패했습니다. 주소를 직접 선택해 복사해 주세요.", "Copy failed. Select the address and copy it manually."},
	{LegalTerms, "이용약관", "Terms of use"},
	{LegalPrivacy, "개인정보처리방침", "Privacy policy"},
	{Close, "닫기", "Close"},
}

var (
	supported = []language.Tag{language.Korean, language.English}
	matcher   = language.NewMatcher(supported)
	cat       = build()
)

func build() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.Korean))
	for _, e := range entries {
		// SetString only fails on malformed tags, and both tags are constants.
		_ = b.SetString(language.Korean, e.key, e.ko)
		_ = b.SetString(language.English, e.key, e.en)
	}
	return b
}

// Translator formats catalog messages for one language. It is safe for
// concurrent use once created.
type Translator struct {
	tag language.Tag
	cat catalog.Catalog
}

// New returns a translator for the closest supported match of locale.
// Unknown or empty locales get Korean.
func New(locale string) *Translator {
	tag, _ := language.MatchStrings(matcher, locale)
	base, _ := tag.Base()
	switch base.String() {
	case "en":
		tag = language.English
	default:
		tag = language.Korean
	}
	return &Translator{tag: tag, cat: cat}
}

// T formats the message for key with args.
func (t *Translator) T(key string, args ...any) string {
	// message.Printer keeps per-call state, so each call gets its own.
	p := message.NewPrinter(t.tag, message.Catalog(t.cat))
	return p.Sprintf(key, args...)
}

// Locale returns the BCP 47 tag in use, e.g. "ko".
func (t *Translator) Locale() string {
	return t.tag.String()
}
