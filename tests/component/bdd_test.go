//go:build component
// +build component

package component

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *ComponentTestSuite) TestEventLifecycle() {
	given, when, then := s.gherkin()

	given().
		threeRegisteredUsers().
		anEventOrganizedByTheFirstUser()

	when().
		theOtherUsersJoinTheEvent()

	then().
		theRosterListsBothJoinersInOrder().
		bothJoinersEarnedTheEventBadge().
		theOrganizerPermissionIsDerivedNotStored()
}

func (s *ComponentTestSuite) TestBroadcastReachesTheRoster() {
	given, when, then := s.gherkin()

	given().
		threeRegisteredUsers().
		anEventOrganizedByTheFirstUser().
		theOtherUsersJoinTheEvent()

	when().
		theOrganizerBroadcastsAnAlert()

	then().
		everyParticipantSeesTheAlertInTheirLog().
		aNonParticipantSeesNothing()
}

func (s *ComponentTestSuite) TestPhotoCommentAuthorization() {
	given, when, then := s.gherkin()

	given().
		threeRegisteredUsers().
		anEventOrganizedByTheFirstUser().
		aPhotoWithACommentByAna()

	when().
		brunoTriesToRemoveAnasComment()

	then().
		theRemovalIsRejected().
		theCommentIsStillThere()

	when().
		theOrganizerRemovesAnasComment()

	then().
		theCommentIsGone()
}

func (s *ComponentTestSuite) TestChatRanking() {
	given, when, then := s.gherkin()

	given().
		threeRegisteredUsers().
		anEventOrganizedByTheFirstUser().
		theOtherUsersJoinTheEvent()

	when().
		aLeaderboardIsRequestedWithTiedCounts()

	then().
		tiedParticipantsOccupyDistinctConsecutiveRanks()
}

func (s *ComponentTestSuite) TestEventRemovalCascades() {
	given, when, then := s.gherkin()

	given().
		threeRegisteredUsers().
		anEventOrganizedByTheFirstUser().
		theOtherUsersJoinTheEvent()

	when().
		theOrganizerRemovesTheEvent()

	then().
		theEventIsGone().
		theJoinersNoLongerParticipateAnywhere()
}

func (s *ComponentTestSuite) threeRegisteredUsers() *ComponentTestSuite {
	s.organizerID = s.registerUser("org")
	s.anaID = s.registerUser("ana")
	s.brunoID = s.registerUser("bruno")
	return s
}

func (s *ComponentTestSuite) anEventOrganizedByTheFirstUser() *ComponentTestSuite {
	s.call(http.MethodPost, "/api/v1/events", s.organizerID, gin.H{
		"title":     "go meetup",
		"starts_at": "2026-09-12T19:00:00Z",
		"category":  "tech",
		"badge":     gin.H{"name": "attendee-2026", "icon": "cup.png"},
	})
	s.Require().Equal(http.StatusCreated, s.lastStatus)
	var resp struct {
		Event struct {
			ID int64 `json:"id"`
		} `json:"event"`
	}
	s.decode(&resp)
	s.eventID = resp.Event.ID
	return s
}

func (s *ComponentTestSuite) theOtherUsersJoinTheEvent() *ComponentTestSuite {
	for _, userID := range []int64{s.anaID, s.brunoID} {
		s.call(http.MethodPost, fmt.Sprintf("/api/v1/events/%d/join", s.eventID), userID, nil)
		s.Require().Equal(http.StatusOK, s.lastStatus)
	}
	return s
}

func (s *ComponentTestSuite) theRosterListsBothJoinersInOrder() *ComponentTestSuite {
	s.call(http.MethodGet, fmt.Sprintf("/api/v1/events/%d/participants", s.eventID), 0, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	var resp struct {
		Participants []int64 `json:"participants"`
	}
	s.decode(&resp)
	s.Require().Equal([]int64{s.anaID, s.brunoID}, resp.Participants)
	return s
}

func (s *ComponentTestSuite) bothJoinersEarnedTheEventBadge() *ComponentTestSuite {
	for _, userID := range []int64{s.anaID, s.brunoID} {
		s.call(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/badges", userID), 0, nil)
		s.Require().Equal(http.StatusOK, s.lastStatus)
		s.Require().Contains(string(s.lastBody), "attendee-2026")
	}
	return s
}

func (s *ComponentTestSuite) theOrganizerPermissionIsDerivedNotStored() *ComponentTestSuite {
	s.call(http.MethodGet, fmt.Sprintf("/api/v1/events/%d/permission", s.eventID), s.organizerID, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	s.Require().Contains(string(s.lastBody), "organizer")
	return s
}

func (s *ComponentTestSuite) theOrganizerBroadcastsAnAlert() *ComponentTestSuite {
	s.call(http.MethodPost, fmt.Sprintf("/api/v1/events/%d/broadcast", s.eventID), s.organizerID, gin.H{
		"message": "venue changed to room B",
	})
	s.Require().Equal(http.StatusOK, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) everyParticipantSeesTheAlertInTheirLog() *ComponentTestSuite {
	for _, userID := range []int64{s.anaID, s.brunoID} {
		s.call(http.MethodGet, "/api/v1/notifications?type=alerta", userID, nil)
		s.Require().Equal(http.StatusOK, s.lastStatus)
		s.Require().Contains(string(s.lastBody), "venue changed to room B")
	}
	return s
}

func (s *ComponentTestSuite) aNonParticipantSeesNothing() *ComponentTestSuite {
	s.call(http.MethodGet, "/api/v1/notifications?type=alerta", s.organizerID, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	s.Require().NotContains(string(s.lastBody), "venue changed to room B")
	return s
}

func (s *ComponentTestSuite) aPhotoWithACommentByAna() *ComponentTestSuite {
	s.call(http.MethodPost, fmt.Sprintf("/api/v1/events/%d/photos", s.eventID), s.anaID, gin.H{})
	s.Require().Equal(http.StatusCreated, s.lastStatus)
	var resp struct {
		Ref string `json:"ref"`
	}
	s.decode(&resp)
	s.photoRef = resp.Ref

	s.call(http.MethodPost, fmt.Sprintf("/api/v1/events/%d/photos/comments", s.eventID), s.anaID, gin.H{
		"ref":  s.photoRef,
		"text": "great shot",
	})
	s.Require().Equal(http.StatusCreated, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) brunoTriesToRemoveAnasComment() *ComponentTestSuite {
	s.call(http.MethodDelete, fmt.Sprintf("/api/v1/events/%d/photos/comments", s.eventID), s.brunoID, gin.H{
		"ref":    s.photoRef,
		"author": "ana",
		"text":   "great shot",
	})
	return s
}

func (s *ComponentTestSuite) theRemovalIsRejected() *ComponentTestSuite {
	s.Require().Equal(http.StatusForbidden, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) theCommentIsStillThere() *ComponentTestSuite {
	s.call(http.MethodGet, fmt.Sprintf("/api/v1/events/%d/photos", s.eventID), 0, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	s.Require().Contains(string(s.lastBody), "great shot")
	return s
}

func (s *ComponentTestSuite) theOrganizerRemovesAnasComment() *ComponentTestSuite {
	s.call(http.MethodDelete, fmt.Sprintf("/api/v1/events/%d/photos/comments", s.eventID), s.organizerID, gin.H{
		"ref":    s.photoRef,
		"author": "ana",
		"text":   "great shot",
	})
	s.Require().Equal(http.StatusOK, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) theCommentIsGone() *ComponentTestSuite {
	s.call(http.MethodGet, fmt.Sprintf("/api/v1/events/%d/photos", s.eventID), 0, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	s.Require().NotContains(string(s.lastBody), "great shot")
	return s
}

func (s *ComponentTestSuite) aLeaderboardIsRequestedWithTiedCounts() *ComponentTestSuite {
	s.call(http.MethodPost, fmt.Sprintf("/api/v1/events/%d/ranking", s.eventID), 0, gin.H{
		"counts": map[string]int{
			fmt.Sprintf("%d", s.anaID):   3,
			fmt.Sprintf("%d", s.brunoID): 3,
		},
	})
	s.Require().Equal(http.StatusOK, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) tiedParticipantsOccupyDistinctConsecutiveRanks() *ComponentTestSuite {
	var resp struct {
		Entries []struct {
			Rank   int   `json:"rank"`
			UserID int64 `json:"user_id"`
			Count  int   `json:"count"`
		} `json:"entries"`
	}
	s.decode(&resp)
	s.Require().Len(resp.Entries, 2)
	s.Require().Equal(1, resp.Entries[0].Rank)
	s.Require().Equal(2, resp.Entries[1].Rank)
	// the tie keeps the joining order
	s.Require().Equal(s.anaID, resp.Entries[0].UserID)
	s.Require().Equal(s.brunoID, resp.Entries[1].UserID)
	return s
}

func (s *ComponentTestSuite) theOrganizerRemovesTheEvent() *ComponentTestSuite {
	s.call(http.MethodDelete, fmt.Sprintf("/api/v1/events/%d", s.eventID), s.organizerID, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) theEventIsGone() *ComponentTestSuite {
	s.call(http.MethodGet, fmt.Sprintf("/api/v1/events/%d", s.eventID), 0, nil)
	s.Require().Equal(http.StatusNotFound, s.lastStatus)
	return s
}

func (s *ComponentTestSuite) theJoinersNoLongerParticipateAnywhere() *ComponentTestSuite {
	s.call(http.MethodGet, fmt.Sprintf("/api/v1/events/%d/participants", s.eventID), 0, nil)
	s.Require().Equal(http.StatusOK, s.lastStatus)
	s.Require().NotContains(string(s.lastBody), fmt.Sprintf("%d", s.anaID))
	return s
}
