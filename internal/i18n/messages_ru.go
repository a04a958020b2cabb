package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.Russian
	for key, text := range ru {
		_ = message.SetString(lang, key, text)
	}
}

var ru = map[string]string{
	// generic
	"error.internal":           "Внутренняя ошибка сервера",
	"error.route_not_found":    "Ресурс не найден",
	"error.method_not_allowed": "Метод не поддерживается",
	"error.too_large":          "Слишком большой запрос",
	"error.rate_limited":       "Слишком много попыток, попробуйте позже",
	"request.invalid_body":     "Неверный формат данных",
	"request.invalid_limit":    "Некорректное значение limit",
	"request.invalid_id":       "Некорректный идентификатор",
	"request.invalid_page":     "Некорректные page или page_size",

	// auth and access
	"auth.required":            "Необходима авторизация",
	"auth.forbidden":           "Доступ запрещен",
	"auth.admin_required":      "Доступ запрещен. Требуются права администратора",
	"auth.members_only":        "Действие доступно только пользователям",
	"auth.invalid_credentials": "Неверный логин или пароль",
	"auth.incomplete":          "Неполные данные",
	"auth.unknown_action":      "Неизвестное действие",
	"auth.login_ok":            "Успешный вход",
	"auth.logout_ok":           "Успешный выход",

	// registration and profile
	"register.invalid_login":     "Логин должен содержать от 6 до 20 латинских букв, цифр, _ или -",
	"register.invalid_password":  "Пароль должен содержать не менее 8 символов",
	"register.invalid_full_name": "ФИО должно содержать только кириллицу, пробелы и дефис",
	"register.invalid_phone":     "Телефон должен быть в формате 8(XXX)XXX-XX-XX",
	"register.invalid_email":     "Некорректный формат email",
	"register.login_taken":       "Пользователь с таким логином уже существует",
	"register.failed":            "Невозможно зарегистрировать пользователя",
	"register.ok":                "Пользователь успешно зарегистрирован",
	"profile.not_found":          "Пользователь не найден",
	"profile.updated":            "Профиль успешно обновлен",
	"profile.avatar_missing":     "Ошибка загрузки файла",
	"profile.avatar_type":        "Недопустимый тип файла. Разрешены: JPEG, PNG, GIF, WebP",
	"profile.avatar_size":        "Файл слишком большой. Максимум %d МБ",
	"profile.avatar_saved":       "Аватар успешно загружен",

	// courses
	"course.name_required": "Не указано название курса",
	"course.invalid_price": "Цена не может быть отрицательной",
	"course.name_taken":    "Курс с таким названием уже существует",
	"course.not_found":     "Курс не найден",
	"course.invalid_sort":  "Неизвестный порядок сортировки",
	"course.in_use":        "Невозможно удалить курс: на него есть заявки",
	"course.create_failed": "Невозможно создать курс",
	"course.created":       "Курс успешно создан",
	"course.updated":       "Курс успешно обновлен",
	"course.deleted":       "Курс удален",

	// applications
	"application.fields_required":        "Все поля обязательны для заполнения",
	"application.invalid_start_date":     "Дата начала должна быть в формате ГГГГ-ММ-ДД",
	"application.unknown_course":         "Такого курса не существует",
	"application.created":                "Заявка успешно создана",
	"application.create_failed":          "Невозможно создать заявку",
	"application.not_found":              "Заявка не найдена",
	"application.status_required":        "Неполные данные",
	"application.invalid_status":         "Недопустимый статус заявки",
	"application.member_complete_only":   "Вы можете только отметить обучение как завершенное",
	"application.not_started":            "Можно завершить только обучение, которое уже началось",
	"application.status_updated":         "Статус заявки обновлен",
	"application.stale":                  "Заявка была изменена, обновите данные",
	"application.feedback_required":      "Неполные данные",
	"application.feedback_not_completed": "Отзыв можно оставить только после завершения обучения",
	"application.feedback_saved":         "Отзыв успешно добавлен",

	// support tickets
	"ticket.fields_required": "Необходимо указать тему и сообщение",
	"ticket.created":         "Обращение успешно создано",
	"ticket.create_failed":   "Невозможно создать обращение",
	"ticket.not_found":       "Тикет не найден",
	"ticket.readonly":        "Пользователи не могут изменять тикеты",
	"ticket.invalid_status":  "Недопустимый статус тикета",
	"ticket.update_required": "Необходимо указать ответ или статус",
	"ticket.responded":       "Ответ успешно добавлен",
	"ticket.status_updated":  "Статус успешно обновлен",

	// status labels
	"status.New":                 "Новая",
	"status.InProgress":          "Идет обучение",
	"status.Completed":           "Обучение завершено",
	"ticket_status.Open":         "Открыт",
	"ticket_status.InProcessing": "В обработке",
	"ticket_status.Resolved":     "Решен",
	"ticket_status.Closed":       "Закрыт",

	"review.anonymous": "Пользователь",
}
