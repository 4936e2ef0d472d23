package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Callback-data protocol. Telegram echoes these strings back verbatim, so
// they double as the dialogue wire format.
const (
	cbMenu           = "menu"
	cbBookStart      = "book_start"
	cbMyAppointments = "my_appointments"
	cbUnsubscribe    = "unsubscribe"

	cbPrefixService       = "svc"
	cbPrefixDay           = "day"
	cbPrefixSlot          = "slot"
	cbPrefixBookConfirm   = "book_confirm"
	cbPrefixAptConfirm    = "apt_confirm"
	cbPrefixCancelAsk     = "apt_cancel_ask"
	cbPrefixCancelConfirm = "apt_cancel_confirm"

	cbMasterToday    = "master_today"
	cbMasterTomorrow = "master_tomorrow"
	cbMaster7Days    = "master_7days"
	cbMasterStatuses = "master_statuses"

	cbPrefixMasterArrived = "master_arrived"
	cbPrefixMasterDone    = "master_done"
	cbPrefixMasterCancel  = "master_cancel"
)

const callbackDayLayout = "2006-01-02"

func encodeService(serviceID int) string {
	return fmt.Sprintf("%s:%d", cbPrefixService, serviceID)
}

func encodeDay(day time.Time, loc *time.Location) string {
	return cbPrefixDay + ":" + day.In(loc).Format(callbackDayLayout)
}

func encodeSlot(start time.Time) string {
	return cbPrefixSlot + ":" + start.UTC().Format(time.RFC3339)
}

func encodeBookConfirm(serviceID int, start time.Time) string {
	return fmt.Sprintf("%s:%d:%s", cbPrefixBookConfirm, serviceID, start.UTC().Format(time.RFC3339))
}

func encodeID(prefix string, id int) string {
	return fmt.Sprintf("%s:%d", prefix, id)
}

// splitCallback separates the action from its argument. Only the first colon
// splits; arguments may themselves contain colons (ISO 8601 instants).
func splitCallback(data string) (action, arg string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}

func parseID(arg string) (int, error) {
	return strconv.Atoi(arg)
}

func parseDay(arg string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(callbackDayLayout, arg, loc)
}

func parseSlot(arg string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, arg)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// parseBookConfirm decodes "<service_id>:<ISO8601>". The instant contains
// colons, so only the first one separates the fields.
func parseBookConfirm(arg string) (int, time.Time, error) {
	parts := strings.SplitN(arg, ":", 2)
	if len(parts) != 2 {
		return 0, time.Time{}, fmt.Errorf("malformed book_confirm payload %q", arg)
	}
	serviceID, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed service id %q: %w", parts[0], err)
	}
	start, err := parseSlot(parts[1])
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("malformed start instant %q: %w", parts[1], err)
	}
	return serviceID, start, nil
}
