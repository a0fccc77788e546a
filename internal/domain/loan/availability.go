package loan

import (
	"github.com/xiebiao/library-console/internal/domain/book"
)

// 借阅资格计算
//
// 一本书对某位读者"可借"，需同时满足两个条件：
// 1. 馆藏副本扣除全馆在借数量后仍有剩余（TotalCopies - 在借数 > 0）
// 2. 该读者没有这本书的在借记录（同一读者同一本书最多一条在借）
//
// 计算是纯函数：输入图书列表和在借记录快照，输出过滤结果，
// 不发网络请求。快照可能滞后于后端，所以创建借阅时后端仍会
// 做最终校验（见service.go的防御性处理）。

// OpenCountByBook 统计每本书的全馆在借数量
// 已归还的记录不计入
func OpenCountByBook(loans []Loan) map[int64]int {
	counts := make(map[int64]int, len(loans))
	for i := range loans {
		if loans[i].IsOpen() {
			counts[loans[i].Book.ID]++
		}
	}
	return counts
}

// HasOpenLoan 判断读者是否有指定图书的在借记录
func HasOpenLoan(loans []Loan, key Key) bool {
	for i := range loans {
		if loans[i].IsOpen() && loans[i].Key() == key {
			return true
		}
	}
	return false
}

// AvailableCopies 计算图书的可借副本数
// 在借数超过馆藏时（后端数据异常）返回0而不是负数
func AvailableCopies(b *book.Book, openCount int) int {
	remaining := b.TotalCopies - openCount
	if remaining < 0 {
		return 0
	}
	return remaining
}

// EligibleBooks 过滤出指定读者可借的图书
// 保持输入切片的顺序（稳定过滤），不修改输入
func EligibleBooks(books []book.Book, loans []Loan, customerID int64) []book.Book {
	counts := OpenCountByBook(loans)

	eligible := make([]book.Book, 0, len(books))
	for _, b := range books {
		if AvailableCopies(&b, counts[b.ID]) <= 0 {
			continue
		}
		if HasOpenLoan(loans, Key{BookID: b.ID, CustomerID: customerID}) {
			continue
		}
		eligible = append(eligible, b)
	}
	return eligible
}

// CheckEligibility 校验单本书对单个读者的借阅资格
// 返回具体的拒绝原因（区别于EligibleBooks的静默过滤，创建
// 借阅时需要把原因反馈给操作员）
func CheckEligibility(b *book.Book, loans []Loan, customerID int64) error {
	counts := OpenCountByBook(loans)
	if AvailableCopies(b, counts[b.ID]) <= 0 {
		return ErrNoAvailableCopies
	}
	if HasOpenLoan(loans, Key{BookID: b.ID, CustomerID: customerID}) {
		return ErrAlreadyBorrowed
	}
	return nil
}
