package dialog

import (
	"fmt"
	"time"

	"meeting-assistant/pkg/telegram"
	"meeting-assistant/pkg/timeparse"
)

func btn(text, action, arg string) telegram.InlineKeyboardButton {
	data := action
	if arg != "" {
		data = action + ":" + arg
	}
	return telegram.InlineKeyboardButton{Text: text, CallbackData: data}
}

func cancelRow() []telegram.InlineKeyboardButton {
	return []telegram.InlineKeyboardButton{btn("❌ Cancel", ActionCancel, "")}
}

func titleKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{cancelRow()}}
}

// dateKeyboard offers today plus the next four days, and a manual option.
func dateKeyboard(now time.Time) *telegram.InlineKeyboardMarkup {
	labels := []string{"Today", "Tomorrow"}
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for i := 0; i < 5; i++ {
		day := now.AddDate(0, 0, i)
		label := day.Format("Mon 02.01")
		if i < len(labels) {
			label = labels[i]
		}
		row = append(row, btn(label, ActionSelectDate, day.Format(timeparse.DateLayout)))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telegram.InlineKeyboardButton{btn("⌨️ Type a date", ActionManualDate, "")})
	rows = append(rows, cancelRow())
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// timeKeyboard offers half-hour slots across the working day.
func timeKeyboard() *telegram.InlineKeyboardMarkup {
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for hour := 8; hour <= 21; hour++ {
		for _, minute := range []int{0, 30} {
			slot := fmt.Sprintf("%02d:%02d", hour, minute)
			row = append(row, btn(slot, ActionSelectTime, slot))
			if len(row) == 4 {
				rows = append(rows, row)
				row = nil
			}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, []telegram.InlineKeyboardButton{btn("⌨️ Type a time", ActionManualTime, "")})
	rows = append(rows, cancelRow())
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func durationKeyboard() *telegram.InlineKeyboardMarkup {
	options := []struct {
		label string
		hours string
	}{
		{"15 min", "0.25"}, {"30 min", "0.5"}, {"45 min", "0.75"},
		{"1 h", "1"}, {"1.5 h", "1.5"}, {"2 h", "2"},
	}
	var rows [][]telegram.InlineKeyboardButton
	var row []telegram.InlineKeyboardButton
	for _, opt := range options {
		row = append(row, btn(opt.label, ActionSelectDuration, opt.hours))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	rows = append(rows, []telegram.InlineKeyboardButton{btn("⌨️ Type hours", ActionManualDuration, "")})
	rows = append(rows, cancelRow())
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func descriptionKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{btn("⏭ Skip", ActionSkipDesc, "")},
		cancelRow(),
	}}
}

func meetKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{btn("✅ Yes", ActionMeetLink, "yes"), btn("🚫 No", ActionMeetLink, "no")},
		cancelRow(),
	}}
}

func confirmKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{btn("✅ Create", ActionConfirm, "")},
		{btn("✏️ Edit", ActionEdit, ""), btn("❌ Cancel", ActionCancel, "")},
	}}
}

func editKeyboard() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{InlineKeyboard: [][]telegram.InlineKeyboardButton{
		{btn("Title", ActionEditTitle, ""), btn("Date", ActionEditDate, "")},
		{btn("Time", ActionEditTime, ""), btn("Duration", ActionEditDuration, "")},
		{btn("Description", ActionEditDesc, "")},
		cancelRow(),
	}}
}
