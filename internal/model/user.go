package model

import "encoding/json"

// User is the identity record returned by the signin endpoint and persisted
// locally for the session.
type User struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StudentID string `json:"studentId"`
	Email     string `json:"email"`
}

// UnmarshalJSON accepts both the current "studentId" key and the older
// "student_id" key; the backend has emitted both across versions.
func (u *User) UnmarshalJSON(data []byte) error {
	type alias User
	aux := struct {
		*alias
		StudentIDSnake string `json:"student_id"`
	}{alias: (*alias)(u)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if u.StudentID == "" {
		u.StudentID = aux.StudentIDSnake
	}
	return nil
}
