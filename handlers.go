package main

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

func logAction(user *models.User, action, extra string) {
	if user == nil {
		return
	}
	if extra != "" {
		log.Printf("User: %d - %s | Action: %s (%s)", user.ID, user.Username, action, extra)
	} else {
		log.Printf("User: %d - %s | Action: %s", user.ID, user.Username, action)
	}
}

// updateUI is the single output path: every render edits the user's one
// live message in place, or sends and remembers a new one when there is
// none. Telegram's "message is not modified" complaint is benign and
// swallowed here.
func updateUI(ctx context.Context, b *bot.Bot, userID int64, text string, markup models.ReplyMarkup) error {
	messageID, ok, err := getMessageID(userID)
	if err != nil {
		return err
	}

	if ok {
		_, err = b.EditMessageText(ctx, &bot.EditMessageTextParams{
			ChatID:      userID,
			MessageID:   messageID,
			Text:        text,
			ParseMode:   models.ParseModeHTML,
			ReplyMarkup: markup,
		})
		if err != nil {
			if strings.Contains(err.Error(), "message is not modified") {
				return nil
			}
			log.Println("Error: could not edit message: ", err)
			return err
		}
		return nil
	}

	message, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      userID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Println("Error: could not send message: ", err)
		return err
	}

	return setMessageID(userID, message.ID)
}

// deleteInbound removes the user's own message so the chat keeps showing
// only the single live UI message.
func deleteInbound(ctx context.Context, b *bot.Bot, update *models.Update) {
	b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    update.Message.Chat.ID,
		MessageID: update.Message.ID,
	})
}

// when user typed `/start`
func startHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := update.Message.From
	logAction(user, "start", "Bot started")
	mtr.Users.Inc()

	// session reset: the old live message is abandoned
	if err := deleteMessageID(user.ID); err != nil {
		return
	}

	stations, err := getStations(user.ID)
	if err != nil {
		return
	}

	text := msgGreetingNewUser
	var markup models.ReplyMarkup
	if len(stations) > 0 {
		text = msgGreeting
		markup = mainMenuKeyboard(user.ID)
	}

	message, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      user.ID,
		Text:        text,
		ParseMode:   models.ParseModeHTML,
		ReplyMarkup: markup,
	})
	if err != nil {
		log.Println("Error: could not send greeting: ", err)
		return
	}

	if err := setMessageID(user.ID, message.ID); err != nil {
		return
	}

	deleteInbound(ctx, b, update)
}

// when user typed `/help`
func helpCommandHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := update.Message.From
	logAction(user, "help", "")

	deleteInbound(ctx, b, update)
	updateUI(ctx, b, user.ID, msgHelp, backKeyboard())
}

// handle all non-command messages
func messageHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	user := update.Message.From
	text := update.Message.Text
	logAction(user, "handle_message", text)

	deleteInbound(ctx, b, update)

	var responseText string
	var markup models.ReplyMarkup

	switch {
	case strings.Contains(text, " "):
		parts := strings.SplitN(text, " ", 2)
		stopNumber, name := parts[0], parts[1]
		if err := addStation(user.ID, stopNumber, name); err != nil {
			return
		}
		responseText = msgStationAdded(name)
		markup = mainMenuKeyboard(user.ID)

	case isAllDigits(text):
		mtr.Requests.Inc()
		responseText = stopScheduleText(text)
		markup = scheduleKeyboard(text)

	case isBusNumber(text):
		mtr.Requests.Inc()
		responseText = routeScheduleText(text[1:])
		markup = backKeyboard()

	default:
		responseText = msgInvalidInput
		markup = mainMenuKeyboard(user.ID)
	}

	updateUI(ctx, b, user.ID, responseText, markup)
}

// stopScheduleText maps renderer outcomes to user-facing text. Upstream
// detail is logged, never shown.
func stopScheduleText(stopNumber string) string {
	schedule, err := renderStopSchedule(ttc, cfg.Location, stopNumber, time.Now())
	if errors.Is(err, errNoArrivals) {
		return msgEmptyBoard
	}
	if err != nil {
		log.Println("Error: could not fetch schedule: ", err)
		return msgUpstreamError
	}
	return schedule
}

// routeScheduleText renders both directions of a route's stop list,
// keeping whichever came back non-empty.
func routeScheduleText(route string) string {
	var parts []string
	for _, forward := range []bool{true, false} {
		text, err := renderRouteStopList(ttc, route, forward)
		if errors.Is(err, errNoArrivals) {
			continue
		}
		if err != nil {
			log.Println("Error: could not fetch route stops: ", err)
			return msgUpstreamError
		}
		parts = append(parts, text)
	}
	if len(parts) == 0 {
		return msgNothingFound
	}
	return strings.Join(parts, "\n")
}

// ---- callback queries ----

func answerCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: update.CallbackQuery.ID,
	})
}

// `back` button: return to the main menu
func backHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := &update.CallbackQuery.From
	logAction(user, "button_callback", update.CallbackQuery.Data)

	updateUI(ctx, b, user.ID, msgGreeting, mainMenuKeyboard(user.ID))
	answerCallback(ctx, b, update)
}

// `schedule` and `back_to_schedule` buttons: pick a saved stop
func scheduleMenuHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := &update.CallbackQuery.From
	logAction(user, "show_schedule", "")

	stations, err := getStations(user.ID)
	if err != nil {
		return
	}

	if len(stations) > 0 {
		updateUI(ctx, b, user.ID, msgChooseStation, stationListKeyboard(stations, false))
	} else {
		updateUI(ctx, b, user.ID, msgNoStations, mainMenuKeyboard(user.ID))
	}
	answerCallback(ctx, b, update)
}

// `help` button
func helpHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := &update.CallbackQuery.From
	logAction(user, "show_help", "")

	updateUI(ctx, b, user.ID, msgHelp, backKeyboard())
	answerCallback(ctx, b, update)
}

// `my_stations` button: list saved stops with delete actions
func myStationsHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := &update.CallbackQuery.From
	logAction(user, "show_my_stations", "")

	stations, err := getStations(user.ID)
	if err != nil {
		return
	}

	if len(stations) > 0 {
		updateUI(ctx, b, user.ID, msgSavedStations, stationListKeyboard(stations, true))
	} else {
		updateUI(ctx, b, user.ID, msgNoStations, mainMenuKeyboard(user.ID))
	}
	answerCallback(ctx, b, update)
}

// `remove_<stop>` button
func removeStationHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := &update.CallbackQuery.From
	data := update.CallbackQuery.Data
	logAction(user, "button_callback", data)

	stopNumber := strings.TrimPrefix(data, "remove_")
	if err := deleteStation(user.ID, stopNumber); err != nil {
		return
	}

	stations, err := getStations(user.ID)
	if err != nil {
		return
	}

	if len(stations) > 0 {
		updateUI(ctx, b, user.ID, msgSavedStations, stationListKeyboard(stations, true))
	} else {
		updateUI(ctx, b, user.ID, msgNoStations, mainMenuKeyboard(user.ID))
	}
	answerCallback(ctx, b, update)
}

// `schedule_<stop>` and `refresh_<stop>` buttons
func stationScheduleHandler(ctx context.Context, b *bot.Bot, update *models.Update) {
	user := &update.CallbackQuery.From
	data := update.CallbackQuery.Data
	logAction(user, "show_schedule_for_station", data)
	mtr.Requests.Inc()

	stopNumber := data[strings.Index(data, "_")+1:]
	updateUI(ctx, b, user.ID, stopScheduleText(stopNumber), scheduleKeyboard(stopNumber))
	answerCallback(ctx, b, update)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
