package reminder

import (
	"fmt"
	"strings"

	"MedicineReminder/internal/medicine"
)

// Subject used for every daily reminder email.
const Subject = "🌟 Your Daily Medicine Reminder & Positive Message"

const bodyTemplate = `
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #2c3e50;">Good Morning! 🌞</h2>

  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 10px; margin: 20px 0;">
    <h3 style="color: #27ae60;">Today's Positive Message:</h3>
    <p style="font-size: 18px; color: #2c3e50; font-style: italic;">%s</p>
  </div>

  <div style="margin: 20px 0;">
    <h3 style="color: #2c3e50;">Your Medicines for Today:</h3>
    <pre style="background-color: #f8f9fa; padding: 15px; border-radius: 5px;">%s</pre>
  </div>

  <p style="color: #7f8c8d;">Remember to take your medicines as prescribed. Have a wonderful day!</p>

  <div style="font-size: 12px; color: #95a5a6; margin-top: 30px; text-align: center;">
    This is an automated reminder from your Medicine Reminder App.
  </div>
</div>`

// FormatMedicineList renders one line per medicine: "- name (dosage) at: t1, t2",
// with dose times in stored order.
func FormatMedicineList(medicines []*medicine.Medicine) string {
	lines := make([]string, 0, len(medicines))
	for _, m := range medicines {
		times := make([]string, 0, len(m.Frequency))
		for _, f := range m.Frequency {
			times = append(times, f.Time)
		}
		lines = append(lines, fmt.Sprintf("- %s (%s) at: %s", m.Name, m.Dosage, strings.Join(times, ", ")))
	}
	return strings.Join(lines, "\n")
}

// Compose renders the reminder email for one recipient. Pure function of its
// inputs, no I/O.
func Compose(address string, medicines []*medicine.Medicine, positiveMessage string) (subject, body string) {
	return Subject, fmt.Sprintf(bodyTemplate, positiveMessage, FormatMedicineList(medicines))
}
