package mailer

import (
	"log"
	"sync"
)

// ConsoleMailer menulis email ke log — dipakai di dev & test.
// Pesan terkirim disimpan supaya test bisa inspeksi.
type ConsoleMailer struct {
	mu   sync.Mutex
	sent []message
}

var _ Mailer = (*ConsoleMailer)(nil)

func NewConsoleMailer() *ConsoleMailer {
	return &ConsoleMailer{}
}

func (m *ConsoleMailer) send(msg message) error {
	m.mu.Lock()
	m.sent = append(m.sent, msg)
	m.mu.Unlock()
	log.Printf("[MAIL] to=%s subject=%q\n%s", msg.To, msg.Subject, msg.Body)
	return nil
}

// SentCount: jumlah pesan yang sudah "terkirim".
func (m *ConsoleMailer) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// SentTo: daftar alamat tujuan, urut pengiriman.
func (m *ConsoleMailer) SentTo() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.sent))
	for _, s := range m.sent {
		out = append(out, s.To)
	}
	return out
}

func (m *ConsoleMailer) SendStudentWelcome(to, studentName, email, password, schoolName string) error {
	return m.send(studentWelcomeMessage(to, studentName, email, password, schoolName))
}

func (m *ConsoleMailer) SendParentWelcome(to, parentName, email, password string) error {
	return m.send(parentWelcomeMessage(to, parentName, email, password))
}

func (m *ConsoleMailer) SendParentInvitation(to, parentName, studentName, code string) error {
	return m.send(parentInvitationMessage(to, parentName, studentName, code))
}
