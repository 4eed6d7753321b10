package mailing

import (
	"fmt"
	"html"
)

func AccountStatusMail(name, status, reason, appURL string) (subject string, body string) {
	name = html.EscapeString(name)
	switch status {
	case "APPROVED":
		return "Your hostel food account is approved",
			fmt.Sprintf(`<p>Hi %s,</p><p>Your account has been approved. You can now sign in and place orders at <a href="%s">%s</a>.</p>`, name, appURL, appURL)
	case "REJECTED":
		return "Your hostel food registration was rejected",
			fmt.Sprintf(`<p>Hi %s,</p><p>Your registration was rejected.%s</p>`, name, reasonLine(reason))
	default:
		return "Your hostel food account is suspended",
			fmt.Sprintf(`<p>Hi %s,</p><p>Your account has been suspended.%s</p>`, name, reasonLine(reason))
	}
}

func reasonLine(reason string) string {
	if reason == "" {
		return ""
	}
	return " Reason: " + html.EscapeString(reason)
}
