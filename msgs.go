package main

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

const (
	msgGreetingNewUser = "👋 <b>Гамарджоба!</b>\n\nЧтобы начать пользоваться ботом, введи номер остановки (четыре цифры после <code>ID</code> на информационном табло автобусной остановки) и я покажу, что сейчас отображается на этом табло.\n\nБотом будет удобнее пользоваться, если сохранить автобусные остановки в избранное. Для этого напиши номер остановки и то, как хочешь её назвать. Например, <code>3855 Метро «Марджанишвили»</code>"

	msgGreeting = "🚌 Куда поедем сегодня?"

	msgHelp = "<b>Где найти расписание</b>\nЧтобы получить расписание, введи номер остановки (четыре цифры после <code>ID</code> на информационном табло автобусной остановки) и я покажу, что сейчас отображается на этом табло.\n\n<b>Как сохранить остановку</b>\nБотом будет удобнее пользоваться, если сохранить автобусные остановки в избранное. Для этого напиши номер остановки и то, как хочешь её назвать. Например, <code>3855 Метро «Марджанишвили»</code>\n\n<b>Как удалить остановку</b>\nЧтобы удалить остановку, нажмите на её название в меню «Мои остановки».\n\n<b>Индикаторы</b>\n🔥 Автобус уедет меньше чем через минуту\n🟡 Автобус скоро отправится (от 2 до 5 минут)\n🟢 Автобус отправится больше чем через 5 минут\n\n<b>Обратная связь</b>\nЕсли что-то сломалось, напишите мне: <code>contact@renecoignard.com</code>"

	msgEmptyBoard = "☕️ <b>Все автобусы уехали</b>\n\nИли табло с таким идентификатором не существует."

	msgUpstreamError = "👀 Что-то поломалось, похоже. Напишите <code>contact@renecoignard.com</code>, если не починится само"

	msgInvalidInput = "🙅‍♂️ <b>Так дело не пойдёт</b>\n\nЭтот бот показывает информацию с табло, которое стоит рядом с автобусной остановкой.\n\nЧтобы получить информацию с табло, введи его номер (четыре цифры, которые отображаются внизу табло).\n\nНапример, если на табло написано <code>ID:3569 SMS:93344</code>, номер табло — <code>3569</code>."

	msgNothingFound = "🔎 <b>Ничего не нашлось</b>\n\nВозможно, все автобусы уже разъехались по домам или табло с таким идентификатором не существует."

	msgNoStations    = "Нет сохранённых остановок ¯\\_(ツ)_/¯"
	msgChooseStation = "Выбери остановку:"
	msgSavedStations = "Сохранённые остановки:"
)

func msgStationAdded(name string) string {
	return fmt.Sprintf("✅ Остановка «%s» добавлена в «Мои остановки»", name)
}

// ---- keyboards ----
// Raw inline keyboards with stable callback data, so buttons on a message
// that outlives a restart keep working.

func mainMenuKeyboard(userID int64) *models.InlineKeyboardMarkup {
	stations, _ := getStations(userID)
	if len(stations) > 0 {
		return &models.InlineKeyboardMarkup{
			InlineKeyboard: [][]models.InlineKeyboardButton{
				{
					{Text: "🕒 Расписание", CallbackData: "schedule"},
					{Text: "🛟 Помощь", CallbackData: "help"},
				},
				{
					{Text: "⭐️ Мои остановки", CallbackData: "my_stations"},
				},
			},
		}
	}
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "🛟 Помощь", CallbackData: "help"}},
		},
	}
}

func scheduleKeyboard(stopNumber string) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "« Назад", CallbackData: "back_to_schedule"},
				{Text: "Обновить", CallbackData: "refresh_" + stopNumber},
			},
		},
	}
}

func backKeyboard() *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "« Назад", CallbackData: "back"}},
		},
	}
}

// stationListKeyboard renders one button per saved stop. In remove mode
// buttons delete the stop, otherwise they open its schedule.
func stationListKeyboard(stations []Station, remove bool) *models.InlineKeyboardMarkup {
	rows := make([][]models.InlineKeyboardButton, 0, len(stations)+1)
	for _, s := range stations {
		label := s.Name
		data := "schedule_" + s.StopNumber
		if remove {
			label = "❌ Удалить: " + s.Name
			data = "remove_" + s.StopNumber
		}
		rows = append(rows, []models.InlineKeyboardButton{{Text: label, CallbackData: data}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{Text: "« Назад", CallbackData: "back"}})
	return &models.InlineKeyboardMarkup{InlineKeyboard: rows}
}
