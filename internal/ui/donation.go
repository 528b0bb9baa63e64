package ui

import (
	"time"

	"github.com/p-n-ai/pai-notes/internal/platform/i18n"
)

// NoticeDuration is how long a copy notice stays on screen.
const NoticeDuration = 2500 * time.Millisecond

// Wallet is a donation address.
type Wallet struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

// Donation is the content of the donation overlay.
type Donation struct {
	Title   string   `json:"title"`
	Wallets []Wallet `json:"wallets"`
}

// NewDonation builds the overlay content.
func NewDonation(tr *i18n.Translator, wallets []Wallet) Donation {
	if wallets == nil {
		wallets = []Wallet{}
	}
	return Donation{Title: tr.T(i18n.DonationTitle), Wallets: wallets}
}

// Notice is a transient message shown after a clipboard write.
type Notice struct {
	OK         bool   `json:"ok"`
	Message    string `json:"message"`
	DurationMs int64  `json:"durationMs"`
}

// CopyNotice reports the outcome of copying an address. A failed copy is not
// an error, only a different message.
func CopyNotice(tr *i18n.Translator, ok bool) Notice {
	msg := tr.T(i18n.DonationCopied)
	if !ok {
		msg = tr.T(i18n.DonationCopyFailed)
	}
	return Notice{OK: ok, Message: msg, DurationMs: NoticeDuration.Milliseconds()}
}
