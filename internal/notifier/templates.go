// server/internal/notifier/templates.go
package notifier

import (
	"fmt"

	"chefhub-kw-api-server/internal/models"
)

// Template là nội dung song ngữ của một thông báo, dùng chung cho cả kênh
// in-app lẫn email/WhatsApp.
type Template struct {
	Type    string
	Title   models.LocalizedText
	Message models.LocalizedText
	Link    string
}

// PlainText trả về nội dung gửi qua các kênh văn bản (WhatsApp).
func (t Template) PlainText() string {
	return t.Message.AR + "\n" + t.Message.EN
}

// HTML trả về nội dung email đơn giản từ template.
func (t Template) HTML() string {
	return fmt.Sprintf(
		`<div dir="rtl"><h2>%s</h2><p>%s</p></div><div dir="ltr"><h2>%s</h2><p>%s</p></div>`,
		t.Title.AR, t.Message.AR, t.Title.EN, t.Message.EN,
	)
}

// ChefApproved gửi cho chef khi admin duyệt hồ sơ.
func ChefApproved(chefName string) Template {
	return Template{
		Type: models.NotifChefApproved,
		Title: models.LocalizedText{
			AR: "تم تفعيل حسابك",
			EN: "Your account has been approved",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("مبروك %s! تمت الموافقة على حسابك ويمكنك الآن استقبال الطلبات.", chefName),
			EN: fmt.Sprintf("Congratulations %s! Your account has been approved and you can now receive orders.", chefName),
		},
		Link: "/chef/dashboard",
	}
}

// ChefSuspended gửi cho chef khi tài khoản bị tạm ngưng.
func ChefSuspended(chefName string) Template {
	return Template{
		Type: models.NotifChefSuspended,
		Title: models.LocalizedText{
			AR: "تم إيقاف حسابك مؤقتاً",
			EN: "Your account has been suspended",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("عزيزي %s، تم إيقاف حسابك مؤقتاً. يرجى التواصل مع الإدارة.", chefName),
			EN: fmt.Sprintf("Dear %s, your account has been suspended. Please contact support.", chefName),
		},
		Link: "/chef/support",
	}
}

// NewOrder gửi cho chef khi có đơn hàng mới.
func NewOrder(orderID, customerName, total string) Template {
	return Template{
		Type: models.NotifNewOrder,
		Title: models.LocalizedText{
			AR: "طلب جديد",
			EN: "New order",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("لديك طلب جديد %s من %s بقيمة %s د.ك", orderID, customerName, total),
			EN: fmt.Sprintf("New order %s from %s, total %s KWD", orderID, customerName, total),
		},
		Link: "/chef/orders/" + orderID,
	}
}

// OrderStatus gửi cho customer khi trạng thái đơn thay đổi.
func OrderStatus(orderID string, status models.OrderStatus) Template {
	statusAR := map[models.OrderStatus]string{
		models.OrderConfirmed:  "تم تأكيد طلبك",
		models.OrderPreparing:  "جاري تحضير طلبك",
		models.OrderReady:      "طلبك جاهز",
		models.OrderDelivering: "طلبك في الطريق",
		models.OrderDelivered:  "تم توصيل طلبك",
		models.OrderCancelled:  "تم إلغاء طلبك",
	}
	return Template{
		Type: models.NotifOrderStatus,
		Title: models.LocalizedText{
			AR: "تحديث الطلب " + orderID,
			EN: "Order " + orderID + " update",
		},
		Message: models.LocalizedText{
			AR: statusAR[status],
			EN: fmt.Sprintf("Your order %s is now %s", orderID, status),
		},
		Link: "/orders/" + orderID,
	}
}

// NewSpecialOrder gửi cho chef khi có yêu cầu đặt món riêng.
func NewSpecialOrder(specialOrderID, customerName string) Template {
	return Template{
		Type: models.NotifNewSpecialOrder,
		Title: models.LocalizedText{
			AR: "طلب خاص جديد",
			EN: "New special order request",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("لديك طلب خاص جديد %s من %s", specialOrderID, customerName),
			EN: fmt.Sprintf("New special order request %s from %s", specialOrderID, customerName),
		},
		Link: "/chef/special-orders/" + specialOrderID,
	}
}

// SpecialOrderQuoted gửi cho customer khi chef báo giá.
func SpecialOrderQuoted(specialOrderID, chefName, price string) Template {
	return Template{
		Type: models.NotifSpecialOrderQuoted,
		Title: models.LocalizedText{
			AR: "تم تسعير طلبك الخاص",
			EN: "Your special order has been quoted",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("قام %s بتسعير طلبك الخاص %s بمبلغ %s د.ك", chefName, specialOrderID, price),
			EN: fmt.Sprintf("%s quoted your special order %s at %s KWD", chefName, specialOrderID, price),
		},
		Link: "/special-orders/" + specialOrderID,
	}
}

// NewChefPending gửi broadcast cho admin khi có chef mới đăng ký.
func NewChefPending(chefName string) Template {
	return Template{
		Type: models.NotifNewChefPending,
		Title: models.LocalizedText{
			AR: "طاهٍ جديد بانتظار الموافقة",
			EN: "New chef pending approval",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("سجل %s كطاهٍ جديد وبانتظار المراجعة", chefName),
			EN: fmt.Sprintf("%s registered as a new chef and is awaiting review", chefName),
		},
		Link: "/admin/chefs?status=pending",
	}
}

// NewReview gửi cho chef khi nhận được đánh giá mới.
func NewReview(chefName string, rating int) Template {
	return Template{
		Type: models.NotifNewReview,
		Title: models.LocalizedText{
			AR: "تقييم جديد",
			EN: "New review",
		},
		Message: models.LocalizedText{
			AR: fmt.Sprintf("حصلت على تقييم جديد %d من 5", rating),
			EN: fmt.Sprintf("%s, you received a new %d/5 review", chefName, rating),
		},
		Link: "/chef/reviews",
	}
}
