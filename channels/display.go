////////////////////////////////////////////////////////////////////////////////
// Copyright © 2022 xx foundation                                             //
//                                                                            //
// Use of this source code is governed by a license that can be found in the  //
// LICENSE file.                                                              //
////////////////////////////////////////////////////////////////////////////////

package channels

import "gitlab.com/nexchat/client/model"

// DisplayDetails returns the name and image to show for the channel. A two
// member channel is shown as the other member: their user name, else the
// channel name, else their user ID, else the channel ID, with their profile
// image, else the channel image. Any other channel uses its own name, else
// its ID, and its own image.
func (c *Channel) DisplayDetails() model.DisplayDetails {
	selfID := c.session.SelfID()

	c.mux.RLock()
	defer c.mux.RUnlock()

	if len(c.members) == 2 {
		other := c.members[0].User
		if other.ExternalUserID == selfID {
			other = c.members[1].User
		}
		return model.DisplayDetails{
			Name: firstNonEmpty(other.UserName, c.name,
				other.ExternalUserID, c.id),
			ImageURL: firstNonEmpty(other.ProfileImageURL, c.imageURL),
		}
	}

	return model.DisplayDetails{
		Name:     firstNonEmpty(c.name, c.id),
		ImageURL: c.imageURL,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
