package simulator

import (
	"time"

	categoryDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/category"
	commentDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/comment"
	employeeDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/employee"
	permissionDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/permission"
	postDatamodel "github.com/frahmantamala/employee-board/internal/core/datamodel/post"
	"github.com/frahmantamala/employee-board/internal/core/user"
)

// Fixtures is the static data a Store can be seeded with.
type Fixtures struct {
	Categories  []*categoryDatamodel.Category
	Posts       []*postDatamodel.Post
	Comments    []*commentDatamodel.Comment
	Employees   []*employeeDatamodel.Employee
	Permissions []*permissionDatamodel.EmployeePermission
}

func ts(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

func employee(id, employeeID, name, department, position, email, phone string) *employeeDatamodel.Employee {
	created := ts("2024-01-01T00:00:00Z")
	return &employeeDatamodel.Employee{
		ID:         id,
		EmployeeID: employeeID,
		Name:       name,
		Department: department,
		Position:   position,
		Email:      email,
		Phone:      phone,
		IsActive:   true,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

// DefaultFixtures returns a fresh copy of the demo data set. Employee "2"
// holds the admin grant.
func DefaultFixtures() Fixtures {
	boardOpened := ts("2024-01-01T00:00:00Z")

	return Fixtures{
		Categories: []*categoryDatamodel.Category{
			{ID: "1", Name: "공지사항", Slug: "notice", Description: "회사 공지사항을 게시하는 게시판입니다.", CreatedAt: boardOpened},
			{ID: "2", Name: "업무공유", Slug: "work-share", Description: "업무 관련 정보를 공유하는 게시판입니다.", CreatedAt: boardOpened},
			{ID: "3", Name: "자유게시판", Slug: "free-board", Description: "자유롭게 소통하는 게시판입니다.", CreatedAt: boardOpened},
			{ID: "4", Name: "익명게시판(느티나무)", Slug: "anonymous", Description: "익명으로 소통하는 게시판입니다.", IsAnonymous: true, CreatedAt: boardOpened},
		},
		Posts: []*postDatamodel.Post{
			{
				ID:         "1",
				Title:      "직원 전용 게시판 오픈 안내",
				Content:    "안녕하세요!\n\n새로운 직원 전용 게시판이 오픈되었습니다.\n\n주요 기능:\n- 카테고리별 게시글 작성\n- 실시간 댓글\n- 익명 게시판 지원\n- 파일 첨부\n\n많은 이용 바랍니다.",
				CategoryID: "1",
				AuthorID:   "admin",
				AuthorName: "관리자",
				ViewCount:  156,
				CreatedAt:  ts("2024-01-01T09:00:00Z"),
				UpdatedAt:  ts("2024-01-01T09:00:00Z"),
			},
			{
				ID:         "2",
				Title:      "프로젝트 진행 상황 공유",
				Content:    "현재 진행 중인 프로젝트들의 상황을 공유드립니다.\n\n1. 웹사이트 리뉴얼: 80% 완료\n2. 모바일 앱 개발: 60% 완료\n3. 새로운 기능 추가: 계획 단계\n\n질문이나 의견이 있으시면 댓글로 남겨주세요.",
				CategoryID: "2",
				AuthorID:   "user1",
				AuthorName: "김개발",
				ViewCount:  89,
				CreatedAt:  ts("2024-01-02T14:30:00Z"),
				UpdatedAt:  ts("2024-01-02T14:30:00Z"),
			},
			{
				ID:         "3",
				Title:      "점심 메뉴 추천해주세요!",
				Content:    "오늘 점심 뭘 먹을지 고민입니다.\n회사 근처 맛집 추천 부탁드려요~\n\n개인적으로는 한식을 선호합니다!",
				CategoryID: "3",
				AuthorID:   "user2",
				AuthorName: "이직원",
				ViewCount:  45,
				CreatedAt:  ts("2024-01-03T11:45:00Z"),
				UpdatedAt:  ts("2024-01-03T11:45:00Z"),
			},
			{
				ID:          "4",
				Title:       "회사 분위기 어떻게 생각하시나요?",
				Content:     "요즘 회사 분위기가 어떤지 솔직한 의견을 듣고 싶습니다.\n\n개선이 필요한 부분이나 좋은 점들을 자유롭게 이야기해주세요.",
				CategoryID:  "4",
				AuthorID:    "anonymous1",
				AuthorName:  user.AnonymousName,
				IsAnonymous: true,
				ViewCount:   234,
				CreatedAt:   ts("2024-01-04T16:20:00Z"),
				UpdatedAt:   ts("2024-01-04T16:20:00Z"),
			},
		},
		Comments: []*commentDatamodel.Comment{
			{ID: "1", Content: "새로운 게시판 정말 좋네요! 많이 활용하겠습니다.", PostID: "1", AuthorID: "user1", AuthorName: "김개발", CreatedAt: ts("2024-01-01T10:15:00Z"), UpdatedAt: ts("2024-01-01T10:15:00Z")},
			{ID: "2", Content: "수고하셨습니다!", PostID: "2", AuthorID: "user2", AuthorName: "이직원", CreatedAt: ts("2024-01-02T15:00:00Z"), UpdatedAt: ts("2024-01-02T15:00:00Z")},
			{ID: "3", Content: "회사 근처 김치찌개 집 추천드려요! 정말 맛있어요.", PostID: "3", AuthorID: "user1", AuthorName: "김개발", CreatedAt: ts("2024-01-03T12:00:00Z"), UpdatedAt: ts("2024-01-03T12:00:00Z")},
			{ID: "4", Content: "전반적으로 괜찮다고 생각해요. 다만 소통이 더 활발해졌으면 좋겠네요.", PostID: "4", AuthorID: "anonymous2", AuthorName: user.AnonymousName, IsAnonymous: true, CreatedAt: ts("2024-01-04T17:00:00Z"), UpdatedAt: ts("2024-01-04T17:00:00Z")},
		},
		Employees: []*employeeDatamodel.Employee{
			employee("1", "2", "김상균", "외국", "팀장", "kim@company.com", "010-1234-5678"),
			employee("2", "163", "서정에", "약지과", "대리", "seo@company.com", "010-2345-6789"),
			employee("3", "267", "백두심", "임상병리실", "과장", "baek@company.com", "010-3456-7890"),
			employee("4", "549", "차제우", "원무", "대리", "cha@company.com", "010-4567-8901"),
			employee("5", "1237", "구선화", "건강증진센터", "부장", "gu@company.com", "010-5678-9012"),
			employee("6", "1509", "김민혜", "5층상급", "과장", "kimmin@company.com", "010-6789-0123"),
			employee("7", "1750", "박용주", "SEROUM", "대리", "park@company.com", "010-7890-1234"),
			employee("8", "1831", "최평택", "방사선실", "과장", "choi@company.com", "010-8901-2345"),
			employee("9", "9347", "이다림", "임상병리실", "대리", "lee@company.com", "010-9012-3456"),
			employee("10", "9440", "최다빈", "원무", "대리", "choi2@company.com", "010-0123-4567"),
			employee("11", "9513", "류정은", "심사", "과장", "ryu@company.com", "010-1234-5679"),
			employee("12", "9561", "공민지", "방사선실", "대리", "gong@company.com", "010-2345-6780"),
			employee("13", "9580", "이경애", "진료협력센터", "부장", "leek@company.com", "010-3456-7891"),
		},
		Permissions: []*permissionDatamodel.EmployeePermission{
			{ID: "1", EmployeeID: "2", Permission: permissionDatamodel.Admin, CreatedAt: boardOpened},
		},
	}
}
