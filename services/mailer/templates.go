package mailer

import (
	"fmt"
	"html"

	"studiobook/models"
)

func detailRows(b *models.Booking) string {
	location := "Flexible / TBD"
	if b.LocationType == "provided" && b.Location != "" {
		location = b.Location
	}
	sessionType := "Personal/Portrait Session"
	if b.BookingType == models.TypeEvent {
		sessionType = fmt.Sprintf("Event (%d people)", b.NumPeople)
	}
	return fmt.Sprintf(`
    <table style="border-collapse:collapse;margin:16px 0">
      <tr><td style="padding:4px 12px 4px 0;color:#666">Date</td><td style="padding:4px 0">%s</td></tr>
      <tr><td style="padding:4px 12px 4px 0;color:#666">Time</td><td style="padding:4px 0">%s - %s</td></tr>
      <tr><td style="padding:4px 12px 4px 0;color:#666">Type</td><td style="padding:4px 0">%s</td></tr>
      <tr><td style="padding:4px 12px 4px 0;color:#666">Location</td><td style="padding:4px 0">%s</td></tr>
    </table>`,
		html.EscapeString(b.BookingDate),
		html.EscapeString(b.StartTime), html.EscapeString(b.EndTime),
		html.EscapeString(sessionType), html.EscapeString(location))
}

func wrap(title, body string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family:Arial,Helvetica,sans-serif;color:#222;max-width:560px;margin:0 auto;padding:24px">
  <h2 style="margin-bottom:8px">%s</h2>
  %s
  <p style="margin-top:32px;color:#999;font-size:12px">This message was sent automatically by the studio booking system.</p>
</body>
</html>`, html.EscapeString(title), body)
}

func bookingReceivedHTML(b *models.Booking) string {
	body := fmt.Sprintf(`
  <p>Hi %s,</p>
  <p>Thanks for your booking request! It is now pending review. You will receive another email once it has been confirmed or if the slot cannot be accommodated.</p>
  %s`, html.EscapeString(b.ClientName), detailRows(b))
	return wrap("Booking Request Received", body)
}

func approvalRequestHTML(b *models.Booking, appURL string) string {
	approveLink := fmt.Sprintf("%s/api/bookings/approve?token=%s", appURL, b.ApprovalToken)
	denyLink := fmt.Sprintf("%s/api/bookings/deny?token=%s", appURL, b.ApprovalToken)

	contact := fmt.Sprintf("<p style=\"color:#666\">%s &middot; %s",
		html.EscapeString(b.ClientEmail), html.EscapeString(b.ClientPhone))
	if b.SpecialRequests != "" {
		contact += fmt.Sprintf("<br>Special requests: %s", html.EscapeString(b.SpecialRequests))
	}
	contact += "</p>"

	body := fmt.Sprintf(`
  <p><strong>%s</strong> requested a session.</p>
  %s
  %s
  <p style="margin-top:24px">
    <a href="%s" style="background:#16a34a;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px;margin-right:12px">Approve</a>
    <a href="%s" style="background:#dc2626;color:#fff;padding:10px 24px;text-decoration:none;border-radius:4px">Deny</a>
  </p>
  <p style="color:#999;font-size:12px">These links expire in 7 days.</p>`,
		html.EscapeString(b.ClientName), detailRows(b), contact, approveLink, denyLink)
	return wrap("New Booking Request", body)
}

func approvalConfirmedHTML(b *models.Booking) string {
	body := fmt.Sprintf(`
  <p>Hi %s,</p>
  <p>Great news! Your booking has been confirmed. See you there.</p>
  %s`, html.EscapeString(b.ClientName), detailRows(b))
	return wrap("Booking Confirmed", body)
}

func denialNoticeHTML(b *models.Booking) string {
	body := fmt.Sprintf(`
  <p>Hi %s,</p>
  <p>Unfortunately the requested slot on %s could not be accommodated. Feel free to submit a new request for another date or time.</p>`,
		html.EscapeString(b.ClientName), html.EscapeString(b.BookingDate))
	return wrap("Booking Update", body)
}
