package notifier

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

type message struct {
	Subject string
	HTML    string
	Text    string
}

type templateSet struct {
	subject string
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

var templates = map[Kind]templateSet{
	KindInvitation: {
		subject: "You're invited to the Secret Santa %q!",
		html: htmltemplate.Must(htmltemplate.New("invitation.html").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; padding: 30px;">
    <h1 style="color: #c41e3a;">Secret Santa</h1>
    <p style="color: #555555;">{{.EventName}}</p>
    <h2>Hi {{.ParticipantName}}!</h2>
    <p>You have been invited to the Secret Santa <strong>{{.EventName}}</strong>.</p>
    <p>Once the organizer runs the draw you will be able to see who you are giving a gift to.</p>
    <p>Your access code:</p>
    <p style="font-family: monospace; font-size: 24px; color: #c41e3a; font-weight: bold;">{{.AccessCode}}</p>
    <p><a href="{{.AccessURL}}" style="background-color: #c41e3a; color: #ffffff; padding: 15px 40px; border-radius: 8px; text-decoration: none;">Open Secret Santa</a></p>
    <p style="color: #888888; font-size: 14px;">If the button does not work, paste this link into your browser:<br>{{.AccessURL}}</p>
  </div>
</body>
</html>`)),
		text: texttemplate.Must(texttemplate.New("invitation.txt").Parse(`Secret Santa - {{.EventName}}

Hi {{.ParticipantName}}!

You have been invited to the Secret Santa "{{.EventName}}".

Once the organizer runs the draw you will be able to see who you are giving a gift to.

Your access code: {{.AccessCode}}

Open it directly: {{.AccessURL}}
`)),
	},
	KindCompletion: {
		subject: "The draw is done - Secret Santa %q",
		html: htmltemplate.Must(htmltemplate.New("completion.html").Parse(`<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; background-color: #f5f5f5; padding: 20px;">
  <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; padding: 30px;">
    <h1 style="color: #0f5132;">The draw is done!</h1>
    <p style="color: #555555;">{{.EventName}}</p>
    <h2>Hi {{.ParticipantName}}!</h2>
    <p>The draw for the Secret Santa <strong>{{.EventName}}</strong> has been completed.</p>
    <p>You can now find out who you are giving a gift to.</p>
    <p>Your access code:</p>
    <p style="font-family: monospace; font-size: 24px; color: #0f5132; font-weight: bold;">{{.AccessCode}}</p>
    <p><a href="{{.AccessURL}}" style="background-color: #0f5132; color: #ffffff; padding: 15px 40px; border-radius: 8px; text-decoration: none;">See your recipient</a></p>
    <p style="color: #92400e;"><strong>Remember:</strong> it's a secret! Don't tell anyone who you drew.</p>
    <p style="color: #888888; font-size: 14px;">If the button does not work, paste this link into your browser:<br>{{.AccessURL}}</p>
  </div>
</body>
</html>`)),
		text: texttemplate.Must(texttemplate.New("completion.txt").Parse(`Secret Santa - the draw is done!

Hi {{.ParticipantName}}!

The draw for the Secret Santa "{{.EventName}}" has been completed.

You can now find out who you are giving a gift to.

Your access code: {{.AccessCode}}

Open it directly: {{.AccessURL}}

Remember: it's a secret! Don't tell anyone who you drew.
`)),
	},
}

func render(kind Kind, payload Payload) (message, error) {
	set, ok := templates[kind]
	if !ok {
		return message{}, fmt.Errorf("unknown message kind %q", kind)
	}
	var html, text bytes.Buffer
	if err := set.html.Execute(&html, payload); err != nil {
		return message{}, fmt.Errorf("render html: %w", err)
	}
	if err := set.text.Execute(&text, payload); err != nil {
		return message{}, fmt.Errorf("render text: %w", err)
	}
	return message{
		Subject: fmt.Sprintf(set.subject, payload.EventName),
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
