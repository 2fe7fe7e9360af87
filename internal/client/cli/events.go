package cli

import (
	"context"

	"github.com/dmitrijs2005/clinicdesk/internal/client/channel"
)

// subscribeEvents prints every known live event. The returned function
// removes all subscriptions.
func (a *App) subscribeEvents() func() {
	unsubs := []func(){
		channel.On(a.channel, func(_ context.Context, ev channel.PatientCreatedEvent) error {
			a.printf("[event] patient %d registered: %s\n", ev.ID, ev.FullName())
			return nil
		}),
		channel.On(a.channel, func(_ context.Context, ev channel.PatientDeletedEvent) error {
			a.printf("[event] patient %d deleted\n", ev.ID)
			return nil
		}),
		channel.On(a.channel, func(_ context.Context, ev channel.PatientHISIDUpdateEvent) error {
			a.printf("[event] patient %d linked to HIS id %s\n", ev.ID, ev.HISPatientID)
			return nil
		}),
		channel.On(a.channel, func(_ context.Context, ev channel.EncounterCreatedEvent) error {
			a.printf("[event] encounter %s booked: %s with %s at %s\n",
				ev.ID, ev.PatientName, ev.PractitionerName, ev.StartTime.Local().Format(startTimeLayout))
			return nil
		}),
		channel.On(a.channel, func(_ context.Context, ev channel.EncounterStatusUpdatedEvent) error {
			a.printf("[event] encounter %s is now %s\n", ev.ID, ev.Status)
			return nil
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
