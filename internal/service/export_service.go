package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"course-portal/backend/internal/repository"
)

// ── 导出模块业务错误 ──

var (
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 导出业务接口
//
// 设计说明：
//   - 学生名单导出为 Excel (.xlsx)，供管理员存档
//   - 周计划导出为 iCalendar (.ics)，每个周计划生成一个全天事件，可订阅到日历客户端
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportStudents 导出学生名单为 Excel
	ExportStudents(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportWeeksICS 导出周计划为 iCalendar
	ExportWeeksICS(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// ExportStudents — 导出学生名单为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "学生名单"
//   - 表头: | # | 姓名 | 邮箱 | 注册时间 |
//
// 返回值：buf（Excel 内容）, filename（建议文件名）, error

func (s *exportService) ExportStudents(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询全部学生（按姓名正序，与列表默认顺序一致）
	students, err := s.repo.User.ListStudents(ctx, "", "name", "ASC")
	if err != nil {
		s.logger.Error("查询学生名单失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 生成 Excel
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "学生名单"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 列宽
	f.SetColWidth(sheetName, "A", "A", 6)
	f.SetColWidth(sheetName, "B", "B", 20)
	f.SetColWidth(sheetName, "C", "C", 32)
	f.SetColWidth(sheetName, "D", "D", 22)

	// 样式
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 表头
	headers := []string{"#", "姓名", "邮箱", "注册时间"}
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetCellValue(sheetName, cell(col, 1), h)
		f.SetCellStyle(sheetName, cell(col, 1), cell(col, 1), headerStyle)
	}

	// 数据行
	for i := range students {
		row := i + 2
		f.SetCellValue(sheetName, cell("A", row), i+1)
		f.SetCellValue(sheetName, cell("B", row), students[i].Name)
		f.SetCellValue(sheetName, cell("C", row), students[i].Email)
		f.SetCellValue(sheetName, cell("D", row), students[i].CreatedAt.Format(timestampLayout))
	}

	// 写入 buffer
	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("学生名单_%s.xlsx", time.Now().Format(dateLayout))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportWeeksICS — 导出周计划为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 输出格式 (RFC 5545)：
//   - 每个周计划一个 VEVENT
//   - 全天事件，DTSTART 为周计划开始日期
//   - SUMMARY = 标题, DESCRIPTION = 说明
//
// 返回值：buf（ICS 内容）, filename（建议文件名）, error

func (s *exportService) ExportWeeksICS(ctx context.Context) (*bytes.Buffer, string, error) {
	// 1. 查询全部周计划（按开始日期正序）
	weeks, err := s.repo.Week.List(ctx, "", "start_date", "ASC")
	if err != nil {
		s.logger.Error("查询周计划失败", zap.Error(err))
		return nil, "", err
	}

	// 2. 生成日历
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//course-portal//weeks//ZH")
	cal.SetName("课程周计划")

	now := time.Now()
	for i := range weeks {
		wk := &weeks[i]

		evt := cal.AddEvent(wk.WeekID + "@course-portal")
		evt.SetDtStampTime(now)
		evt.SetAllDayStartAt(wk.StartDate)
		evt.SetAllDayEndAt(wk.StartDate.AddDate(0, 0, 1))
		evt.SetSummary(wk.Title)
		if wk.Description != "" {
			evt.SetDescription(wk.Description)
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	return buf, "weeks.ics", nil
}

// ── 辅助函数 ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
