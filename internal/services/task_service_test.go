package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskbridge/task-marketplace-api/internal/models"
	"github.com/taskbridge/task-marketplace-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskServiceTestSuite exercises the task lifecycle engine against an
// in-memory store.
type TaskServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *TaskService

	poster     *models.User
	associateA *models.User
	associateB *models.User
	associateC *models.User
}

// SetupTest runs before each test
func (suite *TaskServiceTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Message{},
	)
	suite.Require().NoError(err)

	taskRepo := repository.NewTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)
	suite.service = NewTaskService(taskRepo, userRepo, nil)

	suite.poster = suite.createUser("Priya", models.RoleJPT)
	suite.associateA = suite.createUser("Sofia", models.RoleAssociate)
	suite.associateB = suite.createUser("Liam", models.RoleAssociate)
	suite.associateC = suite.createUser("Aisha", models.RoleAssociate)
}

// TearDownTest runs after each test
func (suite *TaskServiceTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *TaskServiceTestSuite) createUser(name string, role models.UserRole) *models.User {
	user := &models.User{Name: name, Role: role}
	suite.db.Create(user)
	return user
}

func (suite *TaskServiceTestSuite) createTask(required int) *models.Task {
	task, err := suite.service.CreateTask(CreateTaskInput{
		Title:              "Digitize warehouse inventory",
		Description:        "Walk the shelves and record every item in the shared sheet.",
		Tags:               []string{"inventory", "data-entry"},
		RequiredAssociates: required,
		CreatorID:          suite.poster.ID,
	})
	suite.Require().NoError(err)
	return task
}

// TestCreateTask_RoundTrip verifies a fresh task comes back from the store
// exactly as submitted, in the Open state with no team and no thread.
func (suite *TaskServiceTestSuite) TestCreateTask_RoundTrip() {
	created, err := suite.service.CreateTask(CreateTaskInput{
		Title:              "Label training images",
		Description:        "Draw bounding boxes around vehicles in the photo set.",
		Tags:               []string{" vision ", "labeling", "vision", ""},
		RequiredAssociates: 3,
		CreatorID:          suite.poster.ID,
	})
	suite.Require().NoError(err)

	loaded, err := suite.service.GetTask(created.ID)
	suite.Require().NoError(err)

	assert.Equal(suite.T(), "Label training images", loaded.Title)
	assert.Equal(suite.T(), "Draw bounding boxes around vehicles in the photo set.", loaded.Description)
	assert.Equal(suite.T(), []string{"vision", "labeling"}, loaded.Tags)
	assert.Equal(suite.T(), models.TaskStatusOpen, loaded.Status)
	assert.Equal(suite.T(), suite.poster.ID, loaded.CreatedBy)
	assert.Equal(suite.T(), 3, loaded.RequiredAssociates)
	assert.Empty(suite.T(), loaded.Assignments)
	assert.Empty(suite.T(), loaded.Messages)
	assert.Nil(suite.T(), loaded.CompletedAt)
}

func (suite *TaskServiceTestSuite) TestCreateTask_Validation() {
	valid := CreateTaskInput{
		Title:              "Valid title",
		Description:        "A description of reasonable length.",
		Tags:               []string{"misc"},
		RequiredAssociates: 1,
		CreatorID:          suite.poster.ID,
	}

	short := valid
	short.Title = "Hey"
	_, err := suite.service.CreateTask(short)
	assert.ErrorIs(suite.T(), err, ErrTitleTooShort)

	brief := valid
	brief.Description = "too short"
	_, err = suite.service.CreateTask(brief)
	assert.ErrorIs(suite.T(), err, ErrDescriptionTooShort)

	untagged := valid
	untagged.Tags = []string{"  ", ""}
	_, err = suite.service.CreateTask(untagged)
	assert.ErrorIs(suite.T(), err, ErrTagsRequired)

	unstaffed := valid
	unstaffed.RequiredAssociates = 0
	_, err = suite.service.CreateTask(unstaffed)
	assert.ErrorIs(suite.T(), err, ErrInvalidRequiredAssociates)
}

func (suite *TaskServiceTestSuite) TestCreateTask_AssociateForbidden() {
	_, err := suite.service.CreateTask(CreateTaskInput{
		Title:              "Valid title",
		Description:        "A description of reasonable length.",
		Tags:               []string{"misc"},
		RequiredAssociates: 1,
		CreatorID:          suite.associateA.ID,
	})
	assert.ErrorIs(suite.T(), err, ErrNotTaskPoster)
}

// TestAcceptTask_FillsTeam walks the two-associate scenario: the status
// flips to In Progress exactly when the team fills, never earlier, and
// acceptance order is preserved.
func (suite *TaskServiceTestSuite) TestAcceptTask_FillsTeam() {
	task := suite.createTask(2)

	afterA, err := suite.service.AcceptTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusOpen, afterA.Status)
	assert.Equal(suite.T(), []uint64{suite.associateA.ID}, afterA.AssignedUserIDs())

	afterB, err := suite.service.AcceptTask(task.ID, suite.associateB.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusInProgress, afterB.Status)
	assert.Equal(suite.T(), []uint64{suite.associateA.ID, suite.associateB.ID}, afterB.AssignedUserIDs())

	// team is full and the task left Open, so nobody else can join
	_, err = suite.service.AcceptTask(task.ID, suite.associateC.ID)
	assert.ErrorIs(suite.T(), err, ErrAcceptNotAllowed)
}

func (suite *TaskServiceTestSuite) TestAcceptTask_DoubleAcceptForbidden() {
	task := suite.createTask(2)

	_, err := suite.service.AcceptTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)

	_, err = suite.service.AcceptTask(task.ID, suite.associateA.ID)
	assert.ErrorIs(suite.T(), err, ErrAcceptNotAllowed)

	loaded, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), []uint64{suite.associateA.ID}, loaded.AssignedUserIDs())
}

func (suite *TaskServiceTestSuite) TestAcceptTask_JPTForbidden() {
	task := suite.createTask(2)

	_, err := suite.service.AcceptTask(task.ID, suite.poster.ID)
	assert.ErrorIs(suite.T(), err, ErrAcceptNotAllowed)
}

func (suite *TaskServiceTestSuite) TestCompleteTask_Lifecycle() {
	task := suite.createTask(2)

	// not yet in progress
	_, err := suite.service.CompleteTask(task.ID, suite.associateA.ID)
	assert.ErrorIs(suite.T(), err, ErrCompleteNotAllowed)

	_, err = suite.service.AcceptTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)
	_, err = suite.service.AcceptTask(task.ID, suite.associateB.ID)
	suite.Require().NoError(err)

	// an associate who never joined cannot complete
	_, err = suite.service.CompleteTask(task.ID, suite.associateC.ID)
	assert.ErrorIs(suite.T(), err, ErrCompleteNotAllowed)

	before := time.Now()
	completed, err := suite.service.CompleteTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.TaskStatusCompleted, completed.Status)
	suite.Require().NotNil(completed.CompletedAt)
	assert.False(suite.T(), completed.CompletedAt.Before(before))

	// Completed is terminal
	_, err = suite.service.CompleteTask(task.ID, suite.associateB.ID)
	assert.ErrorIs(suite.T(), err, ErrCompleteNotAllowed)
}

func (suite *TaskServiceTestSuite) TestPostMessage_ThreadRules() {
	task := suite.createTask(1)
	_, err := suite.service.AcceptTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)

	// poster and team can message; whitespace is trimmed
	updated, err := suite.service.PostMessage(task.ID, suite.poster.ID, "  How is it going?  ")
	suite.Require().NoError(err)
	suite.Require().Len(updated.Messages, 1)
	assert.Equal(suite.T(), "How is it going?", updated.Messages[0].Text)
	assert.Equal(suite.T(), suite.poster.ID, updated.Messages[0].UserID)

	updated, err = suite.service.PostMessage(task.ID, suite.associateA.ID, "Nearly done.")
	suite.Require().NoError(err)
	assert.Len(suite.T(), updated.Messages, 2)

	// outsiders cannot post
	_, err = suite.service.PostMessage(task.ID, suite.associateB.ID, "Let me in")
	assert.ErrorIs(suite.T(), err, ErrMessageNotAllowed)

	// blank text never lands in the thread
	_, err = suite.service.PostMessage(task.ID, suite.associateA.ID, "   ")
	assert.ErrorIs(suite.T(), err, ErrEmptyMessage)
}

// TestPostMessage_CompletedThreadReadOnly: once completed the thread is
// read-only for everyone, the poster included.
func (suite *TaskServiceTestSuite) TestPostMessage_CompletedThreadReadOnly() {
	task := suite.createTask(1)
	_, err := suite.service.AcceptTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)
	_, err = suite.service.CompleteTask(task.ID, suite.associateA.ID)
	suite.Require().NoError(err)

	_, err = suite.service.PostMessage(task.ID, suite.associateA.ID, "One more thing")
	assert.ErrorIs(suite.T(), err, ErrMessageNotAllowed)

	_, err = suite.service.PostMessage(task.ID, suite.poster.ID, "Thanks all")
	assert.ErrorIs(suite.T(), err, ErrMessageNotAllowed)
}

func (suite *TaskServiceTestSuite) TestCapacityNeverExceeded() {
	task := suite.createTask(2)

	for _, id := range []uint64{suite.associateA.ID, suite.associateB.ID, suite.associateC.ID} {
		suite.service.AcceptTask(task.ID, id)
	}

	loaded, err := suite.service.GetTask(task.ID)
	suite.Require().NoError(err)
	assert.LessOrEqual(suite.T(), len(loaded.Assignments), loaded.RequiredAssociates)
}

func (suite *TaskServiceTestSuite) TestListTasks_Projections() {
	available := suite.createTask(2)
	full := suite.createTask(1)
	_, err := suite.service.AcceptTask(full.ID, suite.associateA.ID)
	suite.Require().NoError(err)

	tasks, total, err := suite.service.ListTasks(ListTasksInput{
		UserID:    suite.associateB.ID,
		Available: true,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), available.ID, tasks[0].ID)

	mine, total, err := suite.service.ListTasks(ListTasksInput{
		UserID:       suite.associateA.ID,
		AssignedToMe: true,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(1), total)
	suite.Require().Len(mine, 1)
	assert.Equal(suite.T(), full.ID, mine[0].ID)

	posted, total, err := suite.service.ListTasks(ListTasksInput{
		UserID:      suite.poster.ID,
		CreatedByMe: true,
	})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(2), total)
	assert.Len(suite.T(), posted, 2)
}

func (suite *TaskServiceTestSuite) TestGetTask_NotFound() {
	_, err := suite.service.GetTask(9999)
	assert.ErrorIs(suite.T(), err, ErrTaskNotFound)
}

func (suite *TaskServiceTestSuite) TestSuggestTags_NotConfigured() {
	_, err := suite.service.SuggestTags(context.Background(), "A long enough description of the work involved.")
	assert.ErrorIs(suite.T(), err, ErrAIServiceNotConfigured)
}

// TestSuite runs the test suite
func TestTaskServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TaskServiceTestSuite))
}
