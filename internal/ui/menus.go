package ui

import "github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"

const (
	BtnSubmit       = "Отправить материал"
	BtnAbout        = "О нас"
	BtnContacts     = "Контакты"
	BtnStatus       = "Посмотреть статус заявок"
	BtnLeaveRequest = "Оставить заявку"
	BtnMainMenu     = "Выход в главное меню"

	BtnBroadcast = "Рассылка"
	BtnPublish   = "Публикация на канале"

	BtnReviewQueue = "Посмотреть заявки"
	BtnSettings    = "Настройка бота"

	BtnAddModerator = "Добавить модератора"
	BtnAddAdmin     = "Добавить администратора"
	BtnSetChannel   = "Изменить канал"
	BtnSetCooldown  = "Изменить интервал отправки заявок"
	BtnBack         = "Вернуться назад"
)

func MenuByRole(role enums.Role) [][]string {
	switch role {
	case enums.RoleAdmin:
		return [][]string{
			{BtnReviewQueue, BtnSettings},
			{BtnPublish, BtnBroadcast},
		}
	case enums.RoleModerator:
		return [][]string{
			{BtnPublish, BtnBroadcast},
		}
	default:
		return [][]string{
			{BtnSubmit, BtnStatus},
			{BtnAbout, BtnContacts},
		}
	}
}

func SubmitMenu() [][]string {
	return [][]string{
		{BtnLeaveRequest},
		{BtnMainMenu},
	}
}

func SettingsMenu() [][]string {
	return [][]string{
		{BtnAddModerator, BtnAddAdmin},
		{BtnSetChannel, BtnSetCooldown},
		{BtnBack},
	}
}
