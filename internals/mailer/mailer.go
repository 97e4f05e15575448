package mailer

import "fmt"

// Mailer: kanal email keluar. Semua pemanggil memperlakukan pengiriman sebagai
// fire-and-log — error dicatat, tidak pernah menggagalkan proses utama.
type Mailer interface {
	SendStudentWelcome(to, studentName, email, password, schoolName string) error
	SendParentWelcome(to, parentName, email, password string) error
	SendParentInvitation(to, parentName, studentName, verificationCode string) error
}

type message struct {
	To      string
	Subject string
	Body    string
}

func studentWelcomeMessage(to, studentName, email, password, schoolName string) message {
	return message{
		To:      to,
		Subject: fmt.Sprintf("Selamat datang di %s", schoolName),
		Body: fmt.Sprintf(
			"Halo %s,\n\nAkun siswa kamu di %s sudah aktif.\n\nEmail: %s\nPassword sementara: %s\n\nSegera login dan ganti password kamu.",
			studentName, schoolName, email, password,
		),
	}
}

func parentWelcomeMessage(to, parentName, email, password string) message {
	return message{
		To:      to,
		Subject: "Akun orang tua Anda sudah dibuat",
		Body: fmt.Sprintf(
			"Halo %s,\n\nAkun orang tua Anda sudah dibuat.\n\nEmail: %s\nPassword sementara: %s\n\nSegera login dan ganti password Anda.",
			parentName, email, password,
		),
	}
}

func parentInvitationMessage(to, parentName, studentName, code string) message {
	return message{
		To:      to,
		Subject: fmt.Sprintf("Verifikasi sebagai orang tua dari %s", studentName),
		Body: fmt.Sprintf(
			"Halo %s,\n\nGunakan kode berikut untuk verifikasi bahwa Anda orang tua dari %s:\n\nKode: %s\n\nKode berlaku 48 jam.",
			parentName, studentName, code,
		),
	}
}
