package ui

import (
	"fmt"

	"github.com/KamalidenovRustem/KursivMedia/internal/domain/enums"
)

func StartMessage(role enums.Role) string {
	switch role {
	case enums.RoleAdmin:
		return "Панель администратора. Выберите действие:"
	case enums.RoleModerator:
		return "Панель модератора. Выберите действие:"
	default:
		return "Добро пожаловать! Здесь вы можете предложить материал для публикации на нашем канале."
	}
}

func SubmitCriteria(minWords, maxWords int) string {
	return fmt.Sprintf(
		"Требования к материалу:\n"+
			"1. Текст от %d до %d слов.\n"+
			"2. К тексту можно приложить одно фото или одно видео.\n"+
			"3. Медиа без подписи не принимаются.\n\n"+
			"Нажмите «%s», чтобы продолжить.",
		minWords, maxWords, BtnLeaveRequest,
	)
}

func SubmitPrompt() string {
	return "Отправьте ваш материал одним сообщением: текст, либо фото/видео с подписью."
}

func AboutMessage() string {
	return "Мы — редакция канала. Публикуем материалы читателей после проверки модераторами."
}

func ContactsMessage() string {
	return "По вопросам сотрудничества пишите на почту редакции или в этот бот."
}

func SubmissionAccepted(id int64) string {
	return fmt.Sprintf("Спасибо! Ваша заявка #%d принята и ожидает рассмотрения.", id)
}

func EmptyCaptionMessage() string {
	return "Медиа без подписи не принимаются. Добавьте текст и отправьте снова."
}

func WordCountMessage(words, minWords, maxWords int, tooShort bool) string {
	if tooShort {
		return fmt.Sprintf("В тексте %d слов, а нужно не меньше %d. Дополните материал и отправьте снова.", words, minWords)
	}
	return fmt.Sprintf("В тексте %d слов, а допускается не больше %d. Сократите материал и отправьте снова.", words, maxWords)
}

func CooldownMessage(remaining int64) string {
	return fmt.Sprintf("Следующую заявку можно отправить через %d сек.", remaining)
}

func NotAllowedMessage() string {
	return "У вас нет прав для выполнения этой команды."
}
