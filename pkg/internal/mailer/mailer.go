package mailer

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

func Enabled() bool {
	return len(viper.GetString("mailer.host")) > 0
}

func Send(to, subject, htmlBody string) error {
	if !Enabled() {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", viper.GetString("mailer.from"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(
		viper.GetString("mailer.host"),
		viper.GetInt("mailer.port"),
		viper.GetString("mailer.username"),
		viper.GetString("mailer.password"),
	)
	return d.DialAndSend(m)
}

func EditorInviteHTML(granter, resourceKind, resourceName string) string {
	return fmt.Sprintf(
		`<p>Hello,</p><p><b>%s</b> added you as an editor of the %s <b>%s</b> on Loreweave.</p>`,
		granter, resourceKind, resourceName,
	)
}
