package email

const (
	subjectConfirmationNLFmt = "Offerte %s is betaald"
	subjectConfirmationENFmt = "Payment received for quote %s"
)
